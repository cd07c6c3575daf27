// Command matchfinder runs a single match search against the matchmaking
// service and reports what it found. It exists to exercise the engine
// end-to-end outside of the embedding host.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/riptide-gg/netplay/api"
	"github.com/riptide-gg/netplay/netplay"
	"github.com/riptide-gg/netplay/netplay/mmp"
	"github.com/riptide-gg/netplay/user"
)

type fileConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	APIEndpoint string `yaml:"api_endpoint"`

	User struct {
		UID         string `yaml:"uid" validate:"required"`
		PlayKey     string `yaml:"play_key" validate:"required"`
		ConnectCode string `yaml:"connect_code" validate:"required"`
		DisplayName string `yaml:"display_name" validate:"required"`
	} `yaml:"user"`

	Search struct {
		Mode        string `yaml:"mode" validate:"required,oneof=ranked unranked direct teams"`
		ConnectCode string `yaml:"connect_code"`
	} `yaml:"search"`

	Netplay netplay.Config `yaml:"netplay"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %v", err)
	}

	cfg := &fileConfig{}
	cfg.Netplay = netplay.DefaultConfig("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %v", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}
	if err := cfg.Netplay.Validate(); err != nil {
		return nil, fmt.Errorf("invalid netplay config: %v", err)
	}
	return cfg, nil
}

func buildLogger(cfg *fileConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.Lock(os.Stdout)
	if cfg.LogFile != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), sink, level)
	return zap.New(core), nil
}

func parseMode(mode string) mmp.PlayMode {
	switch strings.ToLower(mode) {
	case "ranked":
		return mmp.ModeRanked
	case "direct":
		return mmp.ModeDirect
	case "teams":
		return mmp.ModeTeams
	default:
		return mmp.ModeUnranked
	}
}

func main() {
	path := "matchfinder.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	users := user.NewManager(user.Info{
		UID:         cfg.User.UID,
		PlayKey:     cfg.User.PlayKey,
		ConnectCode: cfg.User.ConnectCode,
		DisplayName: cfg.User.DisplayName,
	})
	apiClient := api.NewClient(logger, cfg.APIEndpoint, cfg.Netplay.AppVersion)
	client := netplay.NewClient(logger, cfg.Netplay, users, apiClient)

	client.FindMatch(netplay.MatchSearchSettings{
		Mode:        parseMode(cfg.Search.Mode),
		ConnectCode: cfg.Search.ConnectCode,
	})

	for {
		switch state := client.State(); state {
		case netplay.StateOpponentConnecting:
			ctx, ok := client.MatchContext()
			if !ok {
				break
			}
			logger.Info("Found opponent, stopping",
				zap.String("mid", ctx.ID),
				zap.Int("remote_players", ctx.RemotePlayerCount()),
				zap.Bool("is_host", ctx.IsHost))
			for _, player := range ctx.Players {
				logger.Info("Player",
					zap.Int("port", player.Port),
					zap.String("name", player.DisplayName),
					zap.String("code", player.ConnectCode),
					zap.Bool("bot", player.IsBot))
			}
			return

		case netplay.StateErrorEncountered:
			logger.Error("Matchmaking failed", zap.String("reason", client.ErrorMessage()))
			os.Exit(1)

		default:
			logger.Debug("Waiting", zap.String("state", state.String()))
		}

		time.Sleep(time.Second)
	}
}
