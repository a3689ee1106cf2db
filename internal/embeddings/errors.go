package embeddings

import "github.com/pkg/errors"

var errEmptyVector = errors.New("provider returned an empty vector")
