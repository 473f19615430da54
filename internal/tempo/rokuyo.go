package tempo

import "fmt"

// Rokuyo is one of the six day labels of the Japanese calendar. The numbering
// is fixed by the calendar itself: the label of a day is determined by
// (month + day) mod 6 of its Tempo calendar date.
type Rokuyo int

const (
	Taian Rokuyo = iota
	Shakku
	Sensho
	Tomobiki
	Senbu
	Butsumetsu
)

// Japanese returns the kanji name of the label.
func (r Rokuyo) Japanese() string {
	switch r {
	case Taian:
		return "大安"
	case Shakku:
		return "赤口"
	case Sensho:
		return "先勝"
	case Tomobiki:
		return "友引"
	case Senbu:
		return "先負"
	case Butsumetsu:
		return "仏滅"
	}
	return "unknown"
}

// Index returns the numeric value of the label, 0 through 5.
func (r Rokuyo) Index() int {
	return int(r)
}

// RokuyoFromIndex converts a numeric value into a label.
func RokuyoFromIndex(index int) (Rokuyo, error) {
	if index < 0 || index > 5 {
		return 0, fmt.Errorf("rokuyo index %d out of range", index)
	}
	return Rokuyo(index), nil
}
