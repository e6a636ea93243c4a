package pdf

import "strings"

// BeltRank is one rung of the school's progression ladder.
type BeltRank struct {
	Belt       string
	Grade      string
	Graduation string
}

// beltProgression is the fixed ladder from white belt to II Dan. The order is
// the promotion order; an exam targets the entry after the student's current
// belt.
var beltProgression = []BeltRank{
	{Belt: "Blanco", Grade: "10º Gup", Graduation: "Primera graduación"},
	{Belt: "Blanco Punta Amarilla", Grade: "9º Gup", Graduation: "Segunda graduación"},
	{Belt: "Amarillo", Grade: "8º Gup", Graduation: "Tercera graduación"},
	{Belt: "Amarillo Punta Verde", Grade: "7º Gup", Graduation: "Cuarta graduación"},
	{Belt: "Verde", Grade: "6º Gup", Graduation: "Quinta graduación"},
	{Belt: "Verde Punta Azul", Grade: "5º Gup", Graduation: "Sexta graduación"},
	{Belt: "Azul", Grade: "4º Gup", Graduation: "Séptima graduación"},
	{Belt: "Azul Punta Roja", Grade: "3º Gup", Graduation: "Octava graduación"},
	{Belt: "Rojo", Grade: "2º Gup", Graduation: "Novena graduación"},
	{Belt: "Rojo Punta Negra", Grade: "1º Gup", Graduation: "Décima graduación"},
	{Belt: "Negro", Grade: "I Dan", Graduation: "Undécima graduación"},
	{Belt: "Negro II Dan", Grade: "II Dan", Graduation: "Duodécima graduación"},
}

// BeltLookup matches a student's current belt against the progression table,
// case-insensitively, and returns the current rung plus the exam target (the
// next rung). An unrecognised belt returns zero values with ok=false: the form
// renders blank belt fields rather than failing. The last rung has no next.
func BeltLookup(current string) (cur BeltRank, next BeltRank, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(current))
	if needle == "" {
		return BeltRank{}, BeltRank{}, false
	}
	for i, rank := range beltProgression {
		if strings.ToLower(rank.Belt) == needle {
			cur = rank
			if i+1 < len(beltProgression) {
				next = beltProgression[i+1]
			}
			return cur, next, true
		}
	}
	return BeltRank{}, BeltRank{}, false
}
