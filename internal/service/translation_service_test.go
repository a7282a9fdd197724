package service

import (
	"testing"

	"horizon_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

type fakeTranslationStore struct {
	entries []model.Translation
}

func (f *fakeTranslationStore) ListByLang(lang string) ([]model.Translation, error) {
	var out []model.Translation
	for _, e := range f.entries {
		if e.Lang == lang {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTranslationStore) Upsert(t *model.Translation) error {
	for i := range f.entries {
		if f.entries[i].Key == t.Key && f.entries[i].Lang == t.Lang {
			f.entries[i].Text = t.Text
			return nil
		}
	}
	f.entries = append(f.entries, *t)
	return nil
}

func newTranslationFixture() *TranslationService {
	return NewTranslationService(&fakeTranslationStore{entries: []model.Translation{
		{Key: "store.title", Lang: "en", Text: "Store"},
		{Key: "store.title", Lang: "ar", Text: "المتجر"},
		{Key: "nav.home", Lang: "en", Text: "Home"},
	}})
}

func TestResolveTranslation(t *testing.T) {
	svc := newTranslationFixture()

	assert.Equal(t, "Store", svc.T("en", "store.title"))
	assert.Equal(t, "المتجر", svc.T("ar", "store.title"))
}

func TestFallbackToDefaultLanguage(t *testing.T) {
	svc := newTranslationFixture()

	// nav.home has no Arabic entry, so English is served.
	assert.Equal(t, "Home", svc.T("ar", "nav.home"))
}

func TestFallbackToKey(t *testing.T) {
	svc := newTranslationFixture()

	assert.Equal(t, "missing.key", svc.T("en", "missing.key"))
}

func TestUpsertRefreshesCache(t *testing.T) {
	svc := newTranslationFixture()

	assert.Equal(t, "Store", svc.T("en", "store.title"))

	err := svc.Upsert(&model.Translation{Key: "store.title", Lang: "en", Text: "Shop"})
	assert.NoError(t, err)
	assert.Equal(t, "Shop", svc.T("en", "store.title"))
}

func TestTableReturnsWholeLanguage(t *testing.T) {
	svc := newTranslationFixture()

	table, err := svc.Table("en")
	assert.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Equal(t, "Store", table["store.title"])
}
