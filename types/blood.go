package types

type BloodType string

const (
	APositive  BloodType = "A+"
	ANegative  BloodType = "A-"
	BPositive  BloodType = "B+"
	BNegative  BloodType = "B-"
	ABPositive BloodType = "AB+"
	ABNegative BloodType = "AB-"
	OPositive  BloodType = "O+"
	ONegative  BloodType = "O-"
)

// AllBloodTypes lists the eight canonical ABO/Rh types in display order.
var AllBloodTypes = []BloodType{
	APositive, ANegative, BPositive, BNegative,
	ABPositive, ABNegative, OPositive, ONegative,
}

// CompatibleDonors maps a recipient blood type to the set of donor types
// immunologically permitted to give to it. O- is the universal donor,
// AB+ the universal recipient. This is fixed medical data, not computed.
var CompatibleDonors = map[BloodType][]BloodType{
	APositive:  {APositive, ANegative, OPositive, ONegative},
	ANegative:  {ANegative, ONegative},
	BPositive:  {BPositive, BNegative, OPositive, ONegative},
	BNegative:  {BNegative, ONegative},
	ABPositive: {APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative},
	ABNegative: {ANegative, BNegative, ABNegative, ONegative},
	OPositive:  {OPositive, ONegative},
	ONegative:  {ONegative},
}

// IsCompatible reports whether donorType blood can be given to a recipient
// of recipientType. Types outside the canonical eight are never compatible.
func IsCompatible(donorType, recipientType BloodType) bool {
	donors, ok := CompatibleDonors[recipientType]
	if !ok {
		return false
	}
	for _, d := range donors {
		if d == donorType {
			return true
		}
	}
	return false
}

// rare blood types get flagged in emergency listings
var rareBloodTypes = map[BloodType]bool{
	"O h":      true, // Bombay phenotype
	ABNegative: true,
	ANegative:  true,
	BNegative:  true,
	ONegative:  true,
}

func IsRareBloodType(bt BloodType) bool {
	return rareBloodTypes[bt]
}

func IsValidBloodType(bt BloodType) bool {
	_, ok := CompatibleDonors[bt]
	return ok
}
