package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raksetu/types"
)

func TestCompatibility_SelfCompatibility(t *testing.T) {
	for _, bt := range types.AllBloodTypes {
		assert.True(t, types.IsCompatible(bt, bt), "%s should accept its own type", bt)
	}
}

func TestCompatibility_UniversalDonorAndRecipient(t *testing.T) {
	for _, recipient := range types.AllBloodTypes {
		assert.True(t, types.IsCompatible(types.ONegative, recipient), "O- should be able to give to %s", recipient)
	}
	for _, donor := range types.AllBloodTypes {
		assert.True(t, types.IsCompatible(donor, types.ABPositive), "AB+ should accept %s", donor)
	}
}

func TestCompatibility_Table(t *testing.T) {
	// spot checks against the standard ABO/Rh table
	assert.True(t, types.IsCompatible(types.OPositive, types.APositive))
	assert.False(t, types.IsCompatible(types.APositive, types.ONegative))
	assert.False(t, types.IsCompatible(types.BPositive, types.APositive))
	assert.False(t, types.IsCompatible(types.ABPositive, types.ABNegative))
	assert.True(t, types.IsCompatible(types.BNegative, types.ABNegative))

	require.Len(t, types.CompatibleDonors[types.ABPositive], 8)
	require.Len(t, types.CompatibleDonors[types.ONegative], 1)
}

func TestCompatibility_UnknownTypesAreIncompatible(t *testing.T) {
	assert.False(t, types.IsCompatible("C+", types.APositive))
	assert.False(t, types.IsCompatible(types.APositive, "C+"))
	assert.False(t, types.IsCompatible("", ""))
	assert.False(t, types.IsValidBloodType("C+"))
}

func TestRareBloodTypes(t *testing.T) {
	for _, bt := range []types.BloodType{"O h", types.ABNegative, types.ANegative, types.BNegative, types.ONegative} {
		assert.True(t, types.IsRareBloodType(bt), "%s should be rare", bt)
	}
	assert.False(t, types.IsRareBloodType(types.OPositive))
	assert.False(t, types.IsRareBloodType(types.ABPositive))
}

func TestUrgencyPriority(t *testing.T) {
	assert.Equal(t, 4, types.UrgencyCritical.Priority())
	assert.Equal(t, 3, types.UrgencyHigh.Priority())
	assert.Equal(t, 2, types.UrgencyMedium.Priority())
	assert.Equal(t, 1, types.UrgencyLow.Priority())
	assert.Equal(t, 0, types.Urgency("bogus").Priority())
}

func TestEffectiveUnits_DefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, types.EmergencyRequest{}.EffectiveUnits())
	assert.Equal(t, 1, types.EmergencyRequest{Units: -2}.EffectiveUnits())
	assert.Equal(t, 3, types.EmergencyRequest{Units: 3}.EffectiveUnits())
}

func TestIsFulfilledByResponders(t *testing.T) {
	assert.True(t, types.EmergencyRequest{Units: 2, RespondersCount: 2}.IsFulfilledByResponders())
	assert.False(t, types.EmergencyRequest{Units: 2, RespondersCount: 1}.IsFulfilledByResponders())
	// missing units defaults to 1, so a single responder fulfills it
	assert.True(t, types.EmergencyRequest{RespondersCount: 1}.IsFulfilledByResponders())
	assert.False(t, types.EmergencyRequest{RespondersCount: -5}.IsFulfilledByResponders())
}
