package assets

import (
	"fmt"

	"github.com/baggoblin/baggoblin/internal/game/enemy"
	"github.com/baggoblin/baggoblin/internal/game/item"
)

// TextureID identifies a sprite. Every item ID doubles as the ID of its icon.
type TextureID string

const (
	// TextureNotFound is drawn when the intended texture failed to load.
	TextureNotFound   TextureID = "not_found"
	UIPanel           TextureID = "ui_panel"
	TooltipBackground TextureID = "tooltip_background"
	Backpack          TextureID = "backpack"
	MenuCaveBg        TextureID = "menu_cave_bg"
	Overseer          TextureID = "overseer"
	OverseerEyesWhite TextureID = "overseer_eyes_white"
	OverseerIris      TextureID = "overseer_iris"
	Cursor            TextureID = "cursor"
	RecordPlayer      TextureID = "record_player"
	TileSixteen       TextureID = "tile_sixteen"
	TileEight         TextureID = "tile_eight"
	TileThirtyTwo     TextureID = "tile_thirty_two"
	CombineButton     TextureID = "combine_button"
)

var uiTextures = map[TextureID]bool{
	TextureNotFound: true, UIPanel: true, TooltipBackground: true, Backpack: true,
	MenuCaveBg: true, Overseer: true, OverseerEyesWhite: true, OverseerIris: true,
	Cursor: true, RecordPlayer: true, TileSixteen: true, TileEight: true,
	TileThirtyTwo: true, CombineButton: true,
}

// ItemTexture returns the icon texture of an item.
func ItemTexture(id item.ID) TextureID {
	return TextureID(id)
}

// ParseTextureID validates s as a UI texture or an item icon.
func ParseTextureID(s string) (TextureID, error) {
	id := TextureID(s)
	if uiTextures[id] || item.ID(s).Valid() {
		return id, nil
	}
	return "", fmt.Errorf("assets: unknown texture id %q", s)
}

// SoundID identifies a kind of sound effect. Several files may be registered
// per kind; one is picked at random on each play.
type SoundID string

const (
	SoundEnterRat           SoundID = "enter_rat"
	SoundEnterLittleMonster SoundID = "enter_little_monster"
	SoundEnterBigMonster    SoundID = "enter_big_monster"
	SoundEnterSkeleton      SoundID = "enter_skeleton"
	SoundEnterZombie        SoundID = "enter_zombie"
	SoundDoorCreak          SoundID = "door_creak"
	SoundGoblinAhah         SoundID = "goblin_ahah"
	SoundSlashHit           SoundID = "slash_hit"
	SoundSwordClang         SoundID = "sword_clang"
	SoundWaterDripping      SoundID = "water_dripping"
	SoundCombineAlchemy     SoundID = "combine_alchemy"
	SoundCombineSmithing    SoundID = "combine_smithing"
	SoundCombineCant        SoundID = "combine_cant"
)

var knownSounds = map[SoundID]bool{
	SoundEnterRat: true, SoundEnterLittleMonster: true, SoundEnterBigMonster: true,
	SoundEnterSkeleton: true, SoundEnterZombie: true, SoundDoorCreak: true,
	SoundGoblinAhah: true, SoundSlashHit: true, SoundSwordClang: true,
	SoundWaterDripping: true, SoundCombineAlchemy: true, SoundCombineSmithing: true,
	SoundCombineCant: true,
}

// ParseSoundID validates s as a SoundID.
func ParseSoundID(s string) (SoundID, error) {
	id := SoundID(s)
	if !knownSounds[id] {
		return "", fmt.Errorf("assets: unknown sound id %q", s)
	}
	return id, nil
}

// EnterSound returns the sound played when an encounter with id starts.
func EnterSound(id enemy.ID) SoundID {
	switch id {
	case enemy.Rat:
		return SoundEnterRat
	case enemy.GoblinBrat, enemy.GoblinShieldbearer, enemy.GoblinSwordsman:
		return SoundEnterLittleMonster
	case enemy.Skeleton:
		return SoundEnterSkeleton
	case enemy.Zombie:
		return SoundEnterZombie
	default:
		return SoundEnterBigMonster
	}
}

// AlbumID identifies a music album.
type AlbumID string

const (
	AlbumJazz    AlbumID = "jazz"
	AlbumOminous AlbumID = "ominous"
)

// ParseAlbumID validates s as an AlbumID.
func ParseAlbumID(s string) (AlbumID, error) {
	switch id := AlbumID(s); id {
	case AlbumJazz, AlbumOminous:
		return id, nil
	}
	return "", fmt.Errorf("assets: unknown album id %q", s)
}

// FontID identifies a font face.
type FontID string

const (
	FiraSansLight   FontID = "fira_sans_light"
	FiraSansRegular FontID = "fira_sans_regular"
	FiraSansMedium  FontID = "fira_sans_medium"
	FiraSansBold    FontID = "fira_sans_bold"
	FiraSansItalic  FontID = "fira_sans_italic"
)

// ParseFontID validates s as a FontID.
func ParseFontID(s string) (FontID, error) {
	switch id := FontID(s); id {
	case FiraSansLight, FiraSansRegular, FiraSansMedium, FiraSansBold, FiraSansItalic:
		return id, nil
	}
	return "", fmt.Errorf("assets: unknown font id %q", s)
}
