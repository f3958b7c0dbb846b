package services

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/olenak/lingocards/internal/dictionary"
	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
)

// DictionaryService proxies word lookups to the external dictionary API
type DictionaryService interface {
	Lookup(ctx context.Context, lang, word string) ([]dictionary.Entry, error)
}

type dictionaryService struct {
	client dictionary.Lookup
}

// NewDictionaryService creates a new DictionaryService
func NewDictionaryService(client dictionary.Lookup) DictionaryService {
	return &dictionaryService{client: client}
}

func (s *dictionaryService) Lookup(ctx context.Context, lang, word string) ([]dictionary.Entry, error) {
	log := logger.FromContext(ctx)

	lang = strings.TrimSpace(lang)
	word = strings.TrimSpace(word)
	if lang == "" || word == "" {
		return nil, errors.NewValidationError("word", "language and word are required")
	}

	entries, err := s.client.Lookup(ctx, lang, word)
	if err != nil {
		if goerrors.Is(err, dictionary.ErrNotFound) {
			return nil, errors.NewNotFoundError("dictionary entry", word)
		}
		log.Error("dictionary lookup failed: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
