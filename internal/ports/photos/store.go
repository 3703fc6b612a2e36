package photos

import "context"

// Store guarda el adjunto binario de un alta/edición y devuelve una
// referencia opaca. El core nunca interpreta los bytes de la imagen.
type Store interface {
	Save(ctx context.Context, animalID string, data []byte, contentType string) (string, error)
}
