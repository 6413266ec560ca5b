package services

import (
	"blueghost/internal/models"
	"math/rand/v2"
	"sync"
)

var (
	ghostNames         = []string{"Etherea", "Lumino", "Whisper", "Shade", "Glimmer", "Phantom"}
	ghostPersonalities = []string{"Mysterious", "Cheerful", "Melancholic", "Playful", "Wise", "Shy"}
	ghostQuirks        = []string{"floats silently", "glows softly", "makes eerie sounds", "vanishes at will", "loves storytelling"}
)

type CharacterServiceInterface interface {
	Generate() models.GhostCharacter
}

type CharacterService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCharacterService() *CharacterService {
	return &CharacterService{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (c *CharacterService) Generate() models.GhostCharacter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.GhostCharacter{
		Name:        ghostNames[c.rnd.IntN(len(ghostNames))],
		Personality: ghostPersonalities[c.rnd.IntN(len(ghostPersonalities))],
		Quirk:       ghostQuirks[c.rnd.IntN(len(ghostQuirks))],
	}
}
