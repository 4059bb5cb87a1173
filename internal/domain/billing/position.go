package billing

// Positioned es cualquier elemento con índice de orden dentro de una
// colección. El esquema es base cero: el primer elemento ocupa la posición 0
// y NextPosition sobre una colección vacía devuelve 0.
type Positioned interface {
	Pos() int
	SetPos(int)
}

// Direcciones aceptadas por Reorder.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// NextPosition devuelve la posición para un elemento nuevo: máximo + 1,
// o 0 si la colección está vacía.
func NextPosition[T Positioned](items []T) int {
	if len(items) == 0 {
		return 0
	}
	maxPos := items[0].Pos()
	for _, it := range items[1:] {
		if it.Pos() > maxPos {
			maxPos = it.Pos()
		}
	}
	return maxPos + 1
}

// Swap intercambia las posiciones de dos elementos.
func Swap(a, b Positioned) {
	pa, pb := a.Pos(), b.Pos()
	a.SetPos(pb)
	b.SetPos(pa)
}

// MoveUp intercambia el elemento con su predecesor inmediato por posición.
// Devuelve false sin mutar nada si el elemento es el primero o no existe un
// predecesor en esa posición exacta.
func MoveUp[T Positioned](items []T, item Positioned) bool {
	prev := at(items, item.Pos()-1)
	if prev == nil {
		return false
	}
	Swap(item, prev)
	return true
}

// MoveDown es el espejo de MoveUp: intercambia con el sucesor inmediato.
func MoveDown[T Positioned](items []T, item Positioned) bool {
	next := at(items, item.Pos()+1)
	if next == nil {
		return false
	}
	Swap(item, next)
	return true
}

// Reorder despacha a MoveUp/MoveDown según la dirección ("up"/"down").
// Una dirección desconocida devuelve false sin mutación.
func Reorder[T Positioned](items []T, item Positioned, direction string) bool {
	switch direction {
	case DirectionUp:
		return MoveUp(items, item)
	case DirectionDown:
		return MoveDown(items, item)
	default:
		return false
	}
}

// at localiza el elemento en la posición exacta dada, o nil.
func at[T Positioned](items []T, pos int) Positioned {
	for _, it := range items {
		if it.Pos() == pos {
			return it
		}
	}
	return nil
}
