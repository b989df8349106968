package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FrenchMajesty/diary-category/pkg/labels"
	"github.com/FrenchMajesty/diary-category/pkg/modeldir"
)

func TestLabelsForModel(t *testing.T) {
	log := zap.NewNop()

	t.Run("reordered id2label keeps model order", func(t *testing.T) {
		meta := &modeldir.Metadata{
			NumLabels: 5,
			ID2Label:  map[int]string{0: "group", 1: "food", 2: "friend", 3: "couple", 4: "family"},
		}
		table, err := labelsForModel(meta, nil, log)
		require.NoError(t, err)
		assert.Equal(t, []string{"group", "food", "friend", "couple", "family"}, table.Names())
	})

	t.Run("renamed id2label is rejected", func(t *testing.T) {
		meta := &modeldir.Metadata{
			NumLabels: 5,
			ID2Label:  map[int]string{0: "가족", 1: "연인", 2: "친구", 3: "음식", 4: "단체"},
		}
		_, err := labelsForModel(meta, nil, log)
		assert.ErrorIs(t, err, ErrLabelMismatch)
		assert.ErrorIs(t, err, labels.ErrUnexpectedLabel)
	})

	t.Run("placeholder id2label falls back to default", func(t *testing.T) {
		meta := &modeldir.Metadata{
			NumLabels: 5,
			ID2Label:  map[int]string{0: "LABEL_0", 1: "LABEL_1", 2: "LABEL_2", 3: "LABEL_3", 4: "LABEL_4"},
		}
		table, err := labelsForModel(meta, nil, log)
		require.NoError(t, err)
		assert.Equal(t, labels.Default().Names(), table.Names())
	})

	t.Run("unknown cardinality accepts default", func(t *testing.T) {
		table, err := labelsForModel(&modeldir.Metadata{}, nil, log)
		require.NoError(t, err)
		assert.Equal(t, 5, table.Len())
	})

	t.Run("override is used for placeholder names", func(t *testing.T) {
		override, err := labels.New("a", "b")
		require.NoError(t, err)

		meta := &modeldir.Metadata{NumLabels: 2, ID2Label: map[int]string{0: "LABEL_0", 1: "LABEL_1"}}
		table, err := labelsForModel(meta, override, log)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, table.Names())
	})

	t.Run("override must match model", func(t *testing.T) {
		override, err := labels.New("a", "b")
		require.NoError(t, err)

		_, err = labelsForModel(&modeldir.Metadata{NumLabels: 5}, override, log)
		assert.ErrorIs(t, err, ErrLabelMismatch)
	})

	t.Run("non-contiguous id2label", func(t *testing.T) {
		meta := &modeldir.Metadata{NumLabels: 2, ID2Label: map[int]string{0: "family", 3: "food"}}
		_, err := labelsForModel(meta, nil, log)
		assert.ErrorIs(t, err, labels.ErrInvalidTable)
	})
}
