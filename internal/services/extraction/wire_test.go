package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

func TestBuild(t *testing.T) {
	db, err := repository.OpenInMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db, nil) })

	c, err := Build(common.DefaultConfig(), db, nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Processor)
	assert.NotNil(t, c.Service)
	assert.NotNil(t, c.Exporter)

	cfg := common.DefaultConfig()
	cfg.Extract.Backends = []string{"ocr"}
	_, err = Build(cfg, db, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestNewFieldExtractor_ExtraSets(t *testing.T) {
	fe := NewFieldExtractor(common.FieldsConfig{
		ExtraCities:     []string{"德阳"},
		ExtraTitleWords: []string{"王牌"},
	})
	loc, ok := fe.ExtractLocation("期望城市：德阳")
	require.True(t, ok)
	assert.Equal(t, "德阳", loc)
	assert.False(t, fe.IsValidName("王牌"))
}
