package trace

// recorder accumulates steps while an algorithm runs against a working copy.
type recorder struct {
	a     []int
	steps Sequence
}

func newRecorder(a []int) *recorder {
	return &recorder{a: cloneInts(a)}
}

func (r *recorder) compare(i, j int) {
	r.steps = append(r.steps, Step{Array: cloneInts(r.a), Comparing: &Pair{i, j}})
}

// swap records the pre-swap announcement, performs the swap and records the
// cleared post-swap state.
func (r *recorder) swap(i, j int) {
	r.steps = append(r.steps, Step{Array: cloneInts(r.a), Swapping: &Pair{i, j}})
	r.a[i], r.a[j] = r.a[j], r.a[i]
	r.steps = append(r.steps, Step{Array: cloneInts(r.a)})
}

// BubbleSort records a bubble sort of a. The input is not modified.
func BubbleSort(a []int) Sequence {
	r := newRecorder(a)
	n := len(r.a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			r.compare(j, j+1)
			if r.a[j] > r.a[j+1] {
				r.swap(j, j+1)
			}
		}
	}
	return r.steps
}

// QuickSort records a Lomuto-partition quick sort of a, pivoting on the last
// element of each subrange. The input is not modified.
func QuickSort(a []int) Sequence {
	r := newRecorder(a)
	r.quickSort(0, len(r.a)-1)
	return r.steps
}

func (r *recorder) quickSort(low, high int) {
	if low >= high {
		return
	}
	p := r.partition(low, high)
	r.quickSort(low, p-1)
	r.quickSort(p+1, high)
}

func (r *recorder) partition(low, high int) int {
	pivot := r.a[high]
	i := low - 1
	for j := low; j < high; j++ {
		r.compare(j, high)
		if r.a[j] <= pivot {
			i++
			r.swap(i, j)
		}
	}
	r.swap(i+1, high)
	return i + 1
}
