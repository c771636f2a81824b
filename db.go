package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	uuid "github.com/satori/go.uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var errPlayRecorded = errors.New("ply already recorded")

type gameStore interface {
	createGame(game *Game) error
	getGame(id uuid.UUID) (*Game, error)
	getGames() ([]Game, error)
	getPlays(id uuid.UUID) ([]Play, error)
	savePlay(game *Game, play *Play) error
	pruneEnded(before time.Time) ([]uuid.UUID, error)
}

func openDB() (*gorm.DB, error) {
	dbname, ok := os.LookupEnv("PGDATABASE")
	if !ok {
		dbname = "test"
	}
	connStr := strings.Join([]string{"dbname", dbname}, "=")

	database, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		QueryFields: true,
	})
	if err != nil {
		log.WithError(err).WithField("connStr", connStr).Error("failed to connect database")
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns sets the maximum number of connections in the idle connection pool.
	sqlDB.SetMaxIdleConns(10)
	// SetMaxOpenConns sets the maximum number of open connections to the database.
	sqlDB.SetMaxOpenConns(100)
	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.AutoMigrate(&Game{}, &Play{}); err != nil {
		return nil, err
	}
	return database, nil
}

type gormStore struct {
	db *gorm.DB
}

func (s gormStore) createGame(game *Game) error {
	return s.db.Create(game).Error
}

func (s gormStore) getGame(id uuid.UUID) (*Game, error) {
	var game Game
	if err := s.db.First(&game, Game{GameID: id}).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (s gormStore) getGames() ([]Game, error) {
	var games []Game
	if err := s.db.Order("created_at").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (s gormStore) getPlays(id uuid.UUID) ([]Play, error) {
	var plays []Play
	if err := s.db.Where(Play{GameID: id}).Order("ply").Find(&plays).Error; err != nil {
		return nil, err
	}
	return plays, nil
}

func (s gormStore) savePlay(game *Game, play *Play) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(play)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("game %s ply %d: %w", game.GameID, play.Ply, errPlayRecorded)
		}
		return tx.Save(game).Error
	})
}

func (s gormStore) pruneEnded(before time.Time) ([]uuid.UUID, error) {
	var games []Game
	if err := s.db.Where(Game{End: true}).Where("updated_at < ?", before).Find(&games).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(games))
	for _, game := range games {
		ids = append(ids, game.GameID)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id IN ?", ids).Delete(&Play{}).Error; err != nil {
			return err
		}
		return tx.Where("game_id IN ?", ids).Delete(&Game{}).Error
	})
	return ids, err
}

func closeDB(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func idleError(message string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	e := err
	for errors.Unwrap(e) != nil {
		e = errors.Unwrap(e)
	}
	if e.Error() == "sql: database is closed" {
		time.Sleep(1 * time.Second)
		return
	}
	log.WithField("type", reflect.TypeOf(err)).WithError(err).Error(message)
	panic(err)
}
