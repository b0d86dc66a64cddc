package values

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// epochAnchor is the fixed date-time origin; seeded date-times advance from
// it by seed days plus seed seconds so consecutive seeds never collide.
var epochAnchor = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeededTime returns the canonical timezone-aware date-time for a seed.
func SeededTime(seed int) time.Time {
	return epochAnchor.Add(time.Duration(seed)*24*time.Hour + time.Duration(seed)*time.Second)
}

// SeededUUID returns the canonical UUID for a seed. It hashes the seed so
// equal seeds reproduce the same UUID across processes.
func SeededUUID(seed int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("go-fabricate-%d", seed)))
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()

	register(r, func(seed int) int { return seed })
	register(r, func(seed int) int8 { return int8(seed) })
	register(r, func(seed int) int16 { return int16(seed) })
	register(r, func(seed int) int32 { return int32(seed) })
	register(r, func(seed int) int64 { return int64(seed) })
	register(r, func(seed int) uint { return uint(seed) })
	register(r, func(seed int) uint8 { return uint8(seed) })
	register(r, func(seed int) uint16 { return uint16(seed) })
	register(r, func(seed int) uint32 { return uint32(seed) })
	register(r, func(seed int) uint64 { return uint64(seed) })
	register(r, func(seed int) float32 { return float32(seed) })
	register(r, func(seed int) float64 { return float64(seed) })
	register(r, func(seed int) bool { return seed%2 == 0 })
	register(r, func(seed int) string { return fmt.Sprintf("%d-str", seed) })
	register(r, func(seed int) []byte { return []byte(fmt.Sprintf("%d-bytes", seed)) })

	register(r, func(seed int) decimal.Decimal { return decimal.NewFromInt(int64(seed)) })
	register(r, SeededTime)
	// Durations stay inside a day so they remain valid as times of day.
	register(r, func(seed int) time.Duration {
		return time.Duration(seed%86400) * time.Second
	})

	register(r, SeededUUID)
	register(r, func(seed int) strfmt.UUID { return strfmt.UUID(SeededUUID(seed).String()) })
	register(r, func(seed int) strfmt.DateTime { return strfmt.DateTime(SeededTime(seed)) })
	register(r, func(seed int) strfmt.Date {
		return strfmt.Date(epochAnchor.AddDate(0, 0, seed))
	})

	return r
}

func register[T any](r *Registry, gen func(seed int) T) {
	if err := r.Register(reflect.TypeFor[T](), func(seed int) any { return gen(seed) }); err != nil {
		panic(err)
	}
}
