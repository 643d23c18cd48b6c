package domain

// CategoryKind enumerates the membership tiers. Using a closed tag instead of
// free-form names keeps the STUDENT/COLLABORATOR special-casing exhaustive.
type CategoryKind string

const (
	CategoryActive       CategoryKind = "ACTIVE"
	CategorySupporter    CategoryKind = "SUPPORTER"
	CategoryStudent      CategoryKind = "STUDENT"
	CategoryCollaborator CategoryKind = "COLLABORATOR"
	CategoryTeenager     CategoryKind = "TEENAGER"
	CategoryBenefactor   CategoryKind = "BENEFACTOR"
)

// KnownCategoryKinds lists every valid kind, in no particular order.
var KnownCategoryKinds = []CategoryKind{
	CategoryActive,
	CategorySupporter,
	CategoryStudent,
	CategoryCollaborator,
	CategoryTeenager,
	CategoryBenefactor,
}

func (k CategoryKind) Valid() bool {
	for _, known := range KnownCategoryKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Category is a membership tier. Immutable reference data.
type Category struct {
	Kind CategoryKind
	// FeeCents is the monthly fee in cents; zero means an unpaid tier.
	FeeCents int64
}

// Paying reports whether members of this category owe periodic quotas.
func (c Category) Paying() bool { return c.FeeCents > 0 }
