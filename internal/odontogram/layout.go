// Package odontogram раскладывает 32 зуба по челюстям и квадрантам,
// рисует формы зубов в SVG и держит состояние редактора одонтограммы.
package odontogram

import (
	"fmt"
	"strconv"
	"strings"
)

// ToothKind - анатомическая форма зуба, определяется позицией в квадранте
type ToothKind string

const (
	KindIncisor  ToothKind = "incisivo"
	KindCanine   ToothKind = "canino"
	KindPremolar ToothKind = "premolar"
	KindMolar    ToothKind = "molar"
)

const (
	Quadrants        = 4
	TeethPerQuadrant = 8
	TotalTeeth       = Quadrants * TeethPerQuadrant
)

// Tooth - один зуб схемы
type Tooth struct {
	ID       string // "1.8"
	Quadrant int
	Position int
	Kind     ToothKind
	Title    string // "Muela del juicio superior derecha"
}

// Short возвращает короткий номер зуба для подписи: "1.8" -> "18"
func (t Tooth) Short() string {
	return strings.Replace(t.ID, ".", "", 1)
}

// Quadrant - восемь зубов в порядке отображения слева направо
type Quadrant struct {
	Number int
	Teeth  []Tooth
}

// Jaw - челюсть из двух квадрантов
type Jaw struct {
	Label     string
	Quadrants [2]Quadrant
}

// названия позиций; для зубов мудрости прилагательные в женском роде
var positionNames = [TeethPerQuadrant]string{
	"Incisivo central",
	"Incisivo lateral",
	"Canino",
	"Primer premolar",
	"Segundo premolar",
	"Primer molar",
	"Segundo molar",
	"Muela del juicio",
}

// KindAt возвращает форму зуба по позиции 1-8
func KindAt(position int) ToothKind {
	switch position {
	case 1, 2:
		return KindIncisor
	case 3:
		return KindCanine
	case 4, 5:
		return KindPremolar
	case 6, 7, 8:
		return KindMolar
	default:
		return KindIncisor
	}
}

// ToothType возвращает форму зуба по идентификатору "квадрант.позиция".
// Неразборчивый идентификатор считается резцом.
func ToothType(id string) ToothKind {
	_, position, err := ParseID(id)
	if err != nil {
		return KindIncisor
	}
	return KindAt(position)
}

// ParseID разбирает идентификатор "q.p"
func ParseID(id string) (quadrant, position int, err error) {
	q, p, ok := strings.Cut(id, ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid tooth id %q", id)
	}
	quadrant, err = strconv.Atoi(q)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tooth id %q: %w", id, err)
	}
	position, err = strconv.Atoi(p)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tooth id %q: %w", id, err)
	}
	return quadrant, position, nil
}

// IsValidID проверяет что идентификатор обозначает один из 32 зубов
func IsValidID(id string) bool {
	q, p, err := ParseID(id)
	if err != nil {
		return false
	}
	return q >= 1 && q <= Quadrants && p >= 1 && p <= TeethPerQuadrant && id == toothID(q, p)
}

func toothID(quadrant, position int) string {
	return fmt.Sprintf("%d.%d", quadrant, position)
}

// NewTooth собирает зуб с формой и подписью
func NewTooth(quadrant, position int) Tooth {
	upper := quadrant == 1 || quadrant == 2
	right := quadrant == 1 || quadrant == 4

	jaw := "inferior"
	if upper {
		jaw = "superior"
	}
	side := "izquierdo"
	if right {
		side = "derecho"
	}
	if position == 8 {
		side = strings.TrimSuffix(side, "o") + "a"
	}

	return Tooth{
		ID:       toothID(quadrant, position),
		Quadrant: quadrant,
		Position: position,
		Kind:     KindAt(position),
		Title:    fmt.Sprintf("%s %s %s", positionNames[position-1], jaw, side),
	}
}

func newQuadrant(number int, mirrored bool) Quadrant {
	q := Quadrant{Number: number, Teeth: make([]Tooth, 0, TeethPerQuadrant)}
	for i := 1; i <= TeethPerQuadrant; i++ {
		position := i
		if mirrored {
			position = TeethPerQuadrant + 1 - i
		}
		q.Teeth = append(q.Teeth, NewTooth(number, position))
	}
	return q
}

// Layout возвращает схему рта как её видит врач: правая сторона пациента слева.
// Квадранты 1 и 3 идут от зуба мудрости к центру, 2 и 4 - от центра наружу.
func Layout() [2]Jaw {
	return [2]Jaw{
		{Label: "Maxilar Superior", Quadrants: [2]Quadrant{newQuadrant(1, true), newQuadrant(2, false)}},
		{Label: "Mandíbula Inferior", Quadrants: [2]Quadrant{newQuadrant(3, true), newQuadrant(4, false)}},
	}
}

// AllTeeth возвращает все 32 зуба в порядке отображения
func AllTeeth() []Tooth {
	teeth := make([]Tooth, 0, TotalTeeth)
	for _, jaw := range Layout() {
		for _, q := range jaw.Quadrants {
			teeth = append(teeth, q.Teeth...)
		}
	}
	return teeth
}

// Lookup находит зуб по идентификатору
func Lookup(id string) (Tooth, bool) {
	if !IsValidID(id) {
		return Tooth{}, false
	}
	q, p, _ := ParseID(id)
	return NewTooth(q, p), true
}
