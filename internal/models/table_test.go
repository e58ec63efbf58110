package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAssignFirstWins(t *testing.T) {
	table := &Table{Number: 1}

	assert.True(t, table.Available())
	assert.True(t, table.Assign("cust-a"))
	assert.False(t, table.Assign("cust-b"), "occupied table rejects a second claim")
	assert.Equal(t, "cust-a", table.OccupantID)

	table.Release()
	assert.True(t, table.Available())
	assert.True(t, table.Assign("cust-b"))
}
