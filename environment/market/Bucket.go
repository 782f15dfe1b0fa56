package market

import "fmt"

// Bucket is a discretized inventory level
type Bucket int

// Inventory buckets
const (
	Neutral Bucket = iota
	SlightLong
	ModerateLong
	DeepLong
	SlightShort
	ModerateShort
	DeepShort
)

// NumBuckets is the number of inventory buckets
const NumBuckets = 7

// InventoryBucket returns the bucket of an inventory. Every inventory
// falls in exactly one bucket:
//
//	Bucket			Inventory
//	DeepShort		q ≤ -4
//	ModerateShort	-4 < q < -2
//	SlightShort		-2 ≤ q < 0
//	Neutral			q = 0
//	SlightLong		0 < q ≤ 2
//	ModerateLong	2 < q ≤ 4
//	DeepLong		q > 4
func InventoryBucket(inventory int) Bucket {
	switch {
	case inventory <= -4:
		return DeepShort
	case inventory < -2:
		return ModerateShort
	case inventory < 0:
		return SlightShort
	case inventory == 0:
		return Neutral
	case inventory <= 2:
		return SlightLong
	case inventory <= 4:
		return ModerateLong
	default:
		return DeepLong
	}
}

func (b Bucket) String() string {
	switch b {
	case Neutral:
		return "Neutral"
	case SlightLong:
		return "SlightLong"
	case ModerateLong:
		return "ModerateLong"
	case DeepLong:
		return "DeepLong"
	case SlightShort:
		return "SlightShort"
	case ModerateShort:
		return "ModerateShort"
	case DeepShort:
		return "DeepShort"
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}
