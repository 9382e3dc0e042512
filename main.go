package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/animtx/api"
	"github.com/matt-g-everett/animtx/model"
	"github.com/matt-g-everett/animtx/scene"
	"github.com/matt-g-everett/animtx/stream"
	"github.com/matt-g-everett/animtx/view"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Controller.Subscribe(); err != nil {
		log.Printf("Subscribe failed: %v", err)
	}
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if os.IsNotExist(err) {
		log.Printf("No config at %s, using defaults", configPath)
		a.Config = stream.DefaultConfig()
		return
	} else if err != nil {
		panic(err)
	}
	defer f.Close()

	a.Config, err = stream.ReadConfig(f)
	if err != nil {
		panic(err)
	}
}

func (a *app) play(m *model.Model) {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Controller = stream.NewController(a.Config, stream.NewStreamer(a.Config, a.Client), m)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := api.NewApi(a.Controller).Serve(a.Config.Http.Addr); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a.Controller.Run(ctx)
}

func output(path string) (io.WriteCloser, error) {
	if path == "" || path == "out" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	scenePath := flag.String("if", "", "YAML scene file.")
	viewName := flag.String("iv", "text", "View: text, svg or stream.")
	outPath := flag.String("o", "out", "Output file, or \"out\" for stdout.")
	speed := flag.Float64("speed", 1, "Tempo in ticks per second.")
	flag.Parse()

	if *scenePath == "" {
		log.Fatal("-if is required")
	}
	m, err := scene.LoadFile(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *scenePath, err)
	}

	if *viewName == "stream" {
		a := newApp()
		a.readConfig(*configPath)
		if flagSet("speed") {
			a.Config.Playback.Tempo = *speed
		}
		log.Printf("Config: %+v", a.Config)
		a.play(m)
		return
	}

	format, err := view.ParseFormat(*viewName)
	if err != nil {
		log.Fatal(err)
	}
	w, err := output(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := view.Render(w, format, m, *speed); err != nil {
		log.Fatal(err)
	}
	if w != os.Stdout {
		if err := w.Close(); err != nil {
			log.Fatal(err)
		}
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
