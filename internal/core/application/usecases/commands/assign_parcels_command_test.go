package commands_test

import (
	"testing"

	"parcel/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignParcelsCommand_DeduplicatesAndTrims(t *testing.T) {
	cmd, err := commands.NewAssignParcelsCommand(
		[]string{"TC-1", " TC-2 ", "TC-1", "", "  "})

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, []string{"TC-1", "TC-2"}, cmd.TrackingCodes())
}

func TestNewAssignParcelsCommand_Empty(t *testing.T) {
	testCases := []struct {
		name  string
		input []string
	}{
		{"nil", nil},
		{"empty slice", []string{}},
		{"only blanks", []string{"", "   "}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewAssignParcelsCommand(tc.input)
			require.ErrorIs(t, err, commands.ErrTrackingCodesAreRequired)
		})
	}
}

func TestAssignParcelsCommand_TrackingCodes_ReturnsCopy(t *testing.T) {
	cmd, err := commands.NewAssignParcelsCommand([]string{"TC-1", "TC-2"})
	require.NoError(t, err)

	codes := cmd.TrackingCodes()
	codes[0] = "mutated"

	assert.Equal(t, []string{"TC-1", "TC-2"}, cmd.TrackingCodes())
}

func TestAssignParcelsCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AssignParcelsCommand

	err := cmd.Validate()
	require.ErrorIs(t, err, commands.ErrAssignParcelsCommandIsNotConstructed)
}
