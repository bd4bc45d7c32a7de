package generator

import "github.com/sirupsen/logrus"

// closeComponents flips a weighted coin for every component that still
// carries its own label and closes it on success. A closed territory never
// gains a wall towards another region, so the loop around it survives.
func (r *run) closeComponents() {
	closed := 0
	for i := 0; i < r.registry.Len(); i++ {
		if !r.registry.Independent(i) {
			continue
		}
		if r.rng.Float64() < r.opts.CyclicProbability {
			r.registry.Close(i)
			closed++
		}
	}

	r.log.WithFields(logrus.Fields{
		"closed": closed,
	}).Debug("cyclic structures chosen")
}
