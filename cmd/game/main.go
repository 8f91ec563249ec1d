package main

import (
	"log"

	"github.com/alexsc6955/space-invaders/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Space Invaders")
	ebiten.SetWindowSize(800, 600)
	if err := ebiten.RunGame(game.New()); err != nil {
		log.Fatal(err)
	}
}
