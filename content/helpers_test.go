package content

import "fmt"

func seqKeys() KeyFunc {
	n := 0
	return func() string {
		k := fmt.Sprintf("k%d", n)
		n++
		return k
	}
}

func newTestState(text string) State {
	return New(text, WithKeyFunc(seqKeys()))
}
