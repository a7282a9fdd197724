package service

import (
	"sync"

	"horizon_backend/internal/model"
	"horizon_backend/pkg/logger"

	"go.uber.org/zap"
)

const DefaultLanguage = "en"

// TranslationStore is the persistence contract, satisfied by the gorm
// translation repository.
type TranslationStore interface {
	ListByLang(lang string) ([]model.Translation, error)
	Upsert(*model.Translation) error
}

// TranslationService resolves string keys to localized text. The whole
// table is small, so it is cached in memory and refreshed on writes.
type TranslationService struct {
	Repo TranslationStore

	mu    sync.RWMutex
	cache map[string]map[string]string // lang -> key -> text
}

func NewTranslationService(repo TranslationStore) *TranslationService {
	return &TranslationService{
		Repo:  repo,
		cache: make(map[string]map[string]string),
	}
}

// T resolves a key for a language, falling back to the default language
// and finally to the key itself so missing strings stay visible instead of
// rendering blank.
func (s *TranslationService) T(lang, key string) string {
	if text, ok := s.lookup(lang, key); ok {
		return text
	}
	if lang != DefaultLanguage {
		if text, ok := s.lookup(DefaultLanguage, key); ok {
			return text
		}
	}
	return key
}

// Table returns the full key->text mapping for one language.
func (s *TranslationService) Table(lang string) (map[string]string, error) {
	s.mu.RLock()
	table, ok := s.cache[lang]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}
	return s.loadLang(lang)
}

func (s *TranslationService) Upsert(t *model.Translation) error {
	if err := s.Repo.Upsert(t); err != nil {
		return err
	}

	s.mu.Lock()
	if table, ok := s.cache[t.Lang]; ok {
		table[t.Key] = t.Text
	}
	s.mu.Unlock()
	return nil
}

func (s *TranslationService) lookup(lang, key string) (string, bool) {
	s.mu.RLock()
	table, ok := s.cache[lang]
	s.mu.RUnlock()

	if !ok {
		loaded, err := s.loadLang(lang)
		if err != nil {
			logger.Log.Warn("translation load failed", zap.String("lang", lang), zap.Error(err))
			return "", false
		}
		table = loaded
	}

	text, ok := table[key]
	return text, ok
}

func (s *TranslationService) loadLang(lang string) (map[string]string, error) {
	entries, err := s.Repo.ListByLang(lang)
	if err != nil {
		return nil, err
	}

	table := make(map[string]string, len(entries))
	for _, e := range entries {
		table[e.Key] = e.Text
	}

	s.mu.Lock()
	s.cache[lang] = table
	s.mu.Unlock()
	return table, nil
}
