package cover

import "github.com/roach88/covset/internal/tuple"

// The shuffle order is part of the filter's output contract: the same
// source must reduce to the same subset everywhere, including against
// implementations in other languages sharing the seed. math/rand keeps
// its generator unspecified across releases, so the shuffle pins its
// own: the classic 48-bit linear congruential generator, seed 52,
// driving a tail-first Fisher-Yates pass.

const shuffleSeed = 52

const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (1 << 48) - 1
)

type lcg struct {
	state uint64
}

func newLCG(seed int64) *lcg {
	return &lcg{state: (uint64(seed) ^ lcgMultiplier) & lcgMask}
}

// next31 advances the generator and returns its top 31 bits.
func (r *lcg) next31() int64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) & lcgMask
	return int64(r.state >> 17)
}

// intn returns a uniform value in [0, n). n must be positive and fit
// in 31 bits. Power-of-two bounds take the high bits directly; other
// bounds reject the biased tail of the 31-bit range.
func (r *lcg) intn(n int) int {
	bound := int64(n)
	if bound&(bound-1) == 0 {
		return int((bound * r.next31()) >> 31)
	}
	for {
		bits := r.next31()
		val := bits % bound
		if bits-val+(bound-1) < 1<<31 {
			return int(val)
		}
	}
}

// shuffleTuples permutes data in place, deterministically.
func shuffleTuples(data []tuple.Tuple) {
	r := newLCG(shuffleSeed)
	for i := len(data) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		data[i], data[j] = data[j], data[i]
	}
}
