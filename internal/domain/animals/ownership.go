package animals

import "context"

// OwnerOf expone el dueño de un animal.
// records lo consume vía interfaz para no depender del Service completo.
func (s *Service) OwnerOf(ctx context.Context, animalID string) (string, error) {
	a, err := s.GetByID(ctx, animalID)
	if err != nil {
		return "", err
	}
	return a.OwnerID, nil
}
