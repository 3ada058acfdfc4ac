package sanitizer

const (
	MinFees = 0

	MaxFees = 1000000
)

func NormalizeFees(fees int) int {
	if fees < MinFees {
		return MinFees
	}
	if fees > MaxFees {
		return MaxFees
	}
	return fees
}
