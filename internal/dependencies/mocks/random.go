package mocks

// MockRandom returns queued values, falling back to zero when the
// queue is empty. Shuffle is the identity permutation unless a
// ShuffleFunc is installed.
type MockRandom struct {
	intns       []int
	ShuffleFunc func(n int, swap func(i, j int))
}

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueIntn queues results for subsequent Intn calls.
func (r *MockRandom) QueueIntn(vs ...int) {
	r.intns = append(r.intns, vs...)
}

func (r *MockRandom) Intn(n int) int {
	if len(r.intns) == 0 {
		return 0
	}
	v := r.intns[0]
	r.intns = r.intns[1:]
	return v % n
}

func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	if r.ShuffleFunc != nil {
		r.ShuffleFunc(n, swap)
	}
}
