/*
validate.go - Fail-fast input gate

PURPOSE:
  Checks shape and presence of the three input collections and the two
  required strategies before any aggregation begins. Pure gate: no side
  effects, no partial results.

CHECK ORDER:
  1. Each collection provided        (nil slice -> ErrInvalidStructure)
  2. Each collection non-empty       (empty slice -> ErrEmptyInput)
  3. Options record present          (nil -> ErrInvalidOptions)
  4. Both strategies set             (nil -> ErrMissingStrategy)
*/
package report

// Options carries the two calculation collaborators plus the optional
// warning side-channel. A nil Warnings sink falls back to a zerolog sink
// inside Analyze.
type Options struct {
	Revenue  RevenueStrategy
	Bonus    BonusStrategy
	Warnings WarningSink
}

// DefaultOptions returns Options wired to the reference strategies.
func DefaultOptions() *Options {
	return &Options{Revenue: DefaultRevenue, Bonus: DefaultBonus}
}

// Validate applies the fail-fast taxonomy to a dataset and options pair.
// The first violation wins; aggregation must not start if an error is
// returned.
func Validate(data Dataset, opts *Options) error {
	if data.Sellers == nil {
		return &InputError{Field: "sellers", Err: ErrInvalidStructure}
	}
	if data.Products == nil {
		return &InputError{Field: "products", Err: ErrInvalidStructure}
	}
	if data.PurchaseRecords == nil {
		return &InputError{Field: "purchase_records", Err: ErrInvalidStructure}
	}

	if len(data.Sellers) == 0 {
		return &InputError{Field: "sellers", Err: ErrEmptyInput}
	}
	if len(data.Products) == 0 {
		return &InputError{Field: "products", Err: ErrEmptyInput}
	}
	if len(data.PurchaseRecords) == 0 {
		return &InputError{Field: "purchase_records", Err: ErrEmptyInput}
	}

	if opts == nil {
		return &InputError{Field: "options", Err: ErrInvalidOptions}
	}
	if opts.Revenue == nil {
		return &InputError{Field: "options.calculate_revenue", Err: ErrMissingStrategy}
	}
	if opts.Bonus == nil {
		return &InputError{Field: "options.calculate_bonus", Err: ErrMissingStrategy}
	}

	return nil
}
