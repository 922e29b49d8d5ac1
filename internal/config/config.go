package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server    Server    `koanf:"server"`
	Database  Database  `koanf:"db"`
	Scheduler Scheduler `koanf:"scheduler"`
	Vault     Vault     `koanf:"vault"`
	Alerts    Alerts    `koanf:"alerts"`
}

// Server holds the HTTP listen address.
type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Scheduler controls the recurring rule materialization loop.
type Scheduler struct {
	Interval time.Duration `koanf:"interval"`
}

type Vault struct {
	Secret string `koanf:"secret"`
}

// Alerts configures budget alert publishing to RabbitMQ. Disabled unless a
// broker URL is set.
type Alerts struct {
	AmqpUrl  string `koanf:"amqpurl"`
	Exchange string `koanf:"exchange"`
	Queue    string `koanf:"queue"`
}

func (a Alerts) Enabled() bool {
	return a.AmqpUrl != ""
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Server: Server{
			Addr: ":8181",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "aksuite",
			Pass:   "",
			Name:   "aksuite",
			Schema: "aksuite",
		},
		Scheduler: Scheduler{
			Interval: time.Hour,
		},
		Alerts: Alerts{
			Exchange: "aksuite",
			Queue:    "budget-alerts",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "AKSUITE_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "AKSUITE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
