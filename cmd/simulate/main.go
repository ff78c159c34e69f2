// Package main provides the simulate binary, which loads the game content and
// plays the hero through a sequence of encounters, narrating every turn.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/baggoblin/baggoblin/internal/config"
	"github.com/baggoblin/baggoblin/internal/game/assets"
	"github.com/baggoblin/baggoblin/internal/game/combat"
	"github.com/baggoblin/baggoblin/internal/game/dice"
	"github.com/baggoblin/baggoblin/internal/game/encounter"
	"github.com/baggoblin/baggoblin/internal/game/enemy"
	"github.com/baggoblin/baggoblin/internal/game/item"
	"github.com/baggoblin/baggoblin/internal/game/text"
	"github.com/baggoblin/baggoblin/internal/observability"
)

// heroName is how narration refers to the player character.
const heroName = "Sir Hoardalot"

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	fights := flag.String("enemies", "rat,goblin_brat,skeleton,ogre_necromancer", "comma-separated enemy ids to fight in order")
	seed := flag.Uint64("seed", 0, "seed for a replayable run; 0 uses crypto randomness")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	won, err := run(ctx, cfg, logger, *fights, *seed)
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		stop()
		os.Exit(2)
	}
	if !won {
		stop()
		os.Exit(1)
	}
}

// run loads the content and fights each enemy in order. It reports whether the
// hero won every encounter; a fight cut off by the turn limit is not a win.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, fights string, seed uint64) (bool, error) {
	start := time.Now()

	var src dice.Source = dice.NewCryptoSource()
	if seed != 0 {
		src = dice.NewSeededSource(seed)
	}
	src = dice.NewLoggedSource(src, logger)

	templates, err := enemy.LoadFile(cfg.Content.Enemies)
	if err != nil {
		return false, fmt.Errorf("loading enemy templates: %w", err)
	}
	bestiary, err := enemy.NewBestiary(templates)
	if err != nil {
		return false, fmt.Errorf("indexing enemy templates: %w", err)
	}
	catalog, err := text.LoadCatalogFile(cfg.Content.Texts, src, logger)
	if err != nil {
		return false, fmt.Errorf("loading texts: %w", err)
	}
	for _, t := range []text.Type{text.CombatHeroHit, text.CombatEnemyHit, text.CombatNoResolution, text.CombatEnemyDied, text.CombatHeroDied} {
		if catalog.Count(t) == 0 {
			logger.Warn("no narration lines", zap.String("type", string(t)))
		}
	}
	bonuses := item.Bonuses{}
	if cfg.Content.Items != "" {
		bonuses, err = item.LoadBonusesFile(cfg.Content.Items)
		if err != nil {
			return false, fmt.Errorf("loading item bonuses: %w", err)
		}
	}
	var storage *assets.Storage
	if cfg.Content.Assets != "" {
		storage, err = assets.LoadManifestFile(cfg.Content.Assets, src, logger)
		if err != nil {
			return false, fmt.Errorf("loading asset manifest: %w", err)
		}
		if track, ok := storage.RandomTrack(assets.AlbumOminous); ok {
			logger.Debug("playing music",
				zap.String("track", track.Name),
				zap.Int("album_tracks", storage.AlbumLen(assets.AlbumOminous)),
			)
		}
	}
	logger.Info("content loaded",
		zap.Int("enemies", bestiary.Len()),
		zap.Int("item_bonuses", len(bonuses)),
		zap.Bool("assets", storage != nil),
		zap.Duration("elapsed", time.Since(start)),
	)

	var ids []enemy.ID
	for _, s := range strings.Split(fights, ",") {
		id, err := enemy.ParseID(strings.TrimSpace(s))
		if err != nil {
			return false, fmt.Errorf("parsing -enemies: %w", err)
		}
		ids = append(ids, id)
	}

	hero := &combat.Hero{Stats: combat.Combatant{
		Health:      cfg.Hero.Health,
		MaxHealth:   cfg.Hero.MaxHealth,
		Proficiency: cfg.Hero.Proficiency,
		DamageRes:   cfg.Hero.DamageRes,
		DamageBonus: cfg.Hero.DamageBonus,
	}}
	narrate := func(t text.Type) {
		if line, ok := catalog.Line(t); ok {
			fmt.Println(line)
		}
	}
	sink := combat.SinkFunc(func(n combat.Notification) { narrate(n.TextType()) })

	var stalled []enemy.ID
	necromancerSlain := false
	for _, id := range ids {
		enc, err := encounter.NewFromBestiary(bestiary, id, hero, src, sink, logger)
		if err != nil {
			return false, fmt.Errorf("%w; available: %v", err, bestiary.IDs())
		}
		narrate(enc.Enemy.EnterCombatText)
		if storage != nil {
			if sfx, ok := storage.Sound(assets.EnterSound(id)); ok {
				logger.Debug("playing sound", zap.String("file", sfx))
			}
		}

		if err := enc.Run(ctx, cfg.Sim.MaxTurns); err != nil {
			if errors.Is(err, encounter.ErrTurnLimit) {
				logger.Warn("encounter stalled, moving on", zap.String("enemy", string(id)), zap.Error(err))
				fmt.Printf("The %s and %s circle each other until both give up.\n", enc.Enemy.Name, heroName)
				stalled = append(stalled, id)
				continue
			}
			return false, fmt.Errorf("running encounter: %w", err)
		}
		res, err := enc.Finish()
		if err != nil {
			return false, fmt.Errorf("finishing encounter: %w", err)
		}
		if !res.Won {
			narrate(text.CombatHeroDied)
			fmt.Printf("%s was slain by the %s after %d turns.\n", heroName, enc.Enemy.Name, res.Turns)
			return false, nil
		}
		narrate(text.CombatEnemyDied)
		if id == enemy.OgreNecromancer {
			necromancerSlain = true
		}
		if storage != nil {
			for _, drop := range res.Drops {
				icon, err := storage.Texture(assets.ItemTexture(drop))
				if err != nil {
					return false, fmt.Errorf("loot icon: %w", err)
				}
				logger.Debug("loot icon", zap.String("item", string(drop)), zap.String("file", icon))
			}
		}
		boosted := bonuses.Apply(hero, res.Drops)
		fmt.Printf("The %s is dead after %d turns. Loot: %v\n", enc.Enemy.Name, res.Turns, res.Drops)
		if len(boosted) > 0 {
			fmt.Printf("%s equips %v: %s\n", heroName, boosted, hero.Stats)
		}
	}

	if len(stalled) > 0 {
		fmt.Printf("%s survives, but %d fight(s) never ended: %v\n", heroName, len(stalled), stalled)
		return false, nil
	}
	if necromancerSlain {
		fmt.Println("The Ogre Necromancer is dead! You win!")
	} else {
		fmt.Printf("%s cleared every room: %s\n", heroName, hero.Stats)
	}
	return true, nil
}
