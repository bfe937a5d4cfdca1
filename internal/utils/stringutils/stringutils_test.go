package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "42", ToString(int64(42)))
	assert.Equal(t, "7", ToString(uint8(7)))
	assert.Equal(t, "1.5", ToString(1.5))
}

func TestInClause(t *testing.T) {
	placeholders, args := InClause([]int64{10, 20, 30}, 2)
	assert.Equal(t, []string{"$2", "$3", "$4"}, placeholders)
	assert.Equal(t, []any{int64(10), int64(20), int64(30)}, args)
}
