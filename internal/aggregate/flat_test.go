package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

func TestBuildFlatSumsPerCategory(t *testing.T) {
	scored := []filter.Scored{
		scoredRecord("Work", "Alpha", "none", 2),
		scoredRecord("Work", "Alpha", "none", 1.5),
		scoredRecord("Home", "Garden", "none", 0.5),
	}

	flat := BuildFlat(scored, model.FieldProject, "")
	require.Equal(t, NotEmpty, flat.Empty)
	assert.False(t, flat.BadPattern)

	assert.InDelta(t, 3.5, flat.Totals["Alpha"], 1e-9)
	assert.InDelta(t, 0.5, flat.Totals["Garden"], 1e-9)
	assert.Len(t, flat.Records["Alpha"], 2)
	assert.Len(t, flat.Records["Garden"], 1)
}

func TestBuildFlatRegexInclude(t *testing.T) {
	scored := []filter.Scored{
		scoredRecord("Work", "Alpha", "none", 2),
		scoredRecord("Work", "Beta", "none", 4),
	}

	flat := BuildFlat(scored, model.FieldProject, "ALPHA")
	require.Equal(t, NotEmpty, flat.Empty)
	assert.Len(t, flat.Totals, 1)
	assert.InDelta(t, 2.0, flat.Totals["Alpha"], 1e-9)
}

func TestBuildFlatInvalidRegex(t *testing.T) {
	scored := []filter.Scored{scoredRecord("Work", "Alpha", "none", 2)}

	flat := BuildFlat(scored, model.FieldProject, "(")
	assert.True(t, flat.BadPattern)
	assert.Empty(t, flat.Totals)
	assert.Empty(t, flat.Records)
}

func TestBuildFlatEmptyReasons(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		flat := BuildFlat(nil, model.FieldProject, "")
		assert.Equal(t, EmptyNoRecords, flat.Empty)
	})

	t.Run("no match", func(t *testing.T) {
		scored := []filter.Scored{scoredRecord("Work", "Alpha", "none", 2)}
		flat := BuildFlat(scored, model.FieldProject, "nothing-matches")
		assert.Equal(t, EmptyNoMatch, flat.Empty)
		assert.False(t, flat.BadPattern)
	})
}
