package ocr

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine returns canned text or errors per profile name.
type stubEngine struct {
	texts map[string]string
	errs  map[string]error
}

func (s *stubEngine) Recognize(ctx context.Context, image []byte, profile Profile) (string, error) {
	if err, ok := s.errs[profile.Name]; ok {
		return "", err
	}
	return s.texts[profile.Name], nil
}

func TestBestTextPicksDensestResult(t *testing.T) {
	engine := &stubEngine{
		texts: map[string]string{
			"block":  "short",
			"column": "a much denser   recognition   result with more characters",
			"auto":   "medium length text",
		},
	}
	s := NewSelector(engine)

	text, err := s.BestText(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, engine.texts["column"], text)
}

func TestBestTextIgnoresWhitespaceWhenScoring(t *testing.T) {
	engine := &stubEngine{
		texts: map[string]string{
			"block":  "abcdef",
			"column": "a b c                                                      ",
			"auto":   "",
		},
	}
	s := NewSelector(engine)

	text, err := s.BestText(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "abcdef", text)
}

func TestBestTextSurvivesPartialFailures(t *testing.T) {
	engine := &stubEngine{
		texts: map[string]string{"auto": "recovered text"},
		errs: map[string]error{
			"block":  fmt.Errorf("segfault in layout analysis"),
			"column": fmt.Errorf("bad page"),
		},
	}
	s := NewSelector(engine)

	text, err := s.BestText(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "recovered text", text)
}

func TestBestTextFailsOnlyWhenAllProfilesFail(t *testing.T) {
	engine := &stubEngine{
		errs: map[string]error{
			"block":  fmt.Errorf("boom"),
			"column": fmt.Errorf("boom"),
			"auto":   fmt.Errorf("boom"),
		},
	}
	s := NewSelector(engine)

	_, err := s.BestText(context.Background(), []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all OCR profiles failed")
}

func TestBestTextRejectsEmptyImage(t *testing.T) {
	s := NewSelector(&stubEngine{})

	_, err := s.BestText(context.Background(), nil)
	assert.Error(t, err)
}

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()
	require.Len(t, profiles, 3)
	assert.Equal(t, 6, profiles[0].PageSegMode)
	for _, p := range profiles {
		assert.True(t, p.PreserveSpaces, "profile %s", p.Name)
	}
}
