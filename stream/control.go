package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/eclipse/paho.mqtt.golang"
)

// ErrBadMessage is returned for control messages that cannot be applied.
var ErrBadMessage = errors.New("bad control message")

// ControlMessage drives playback. Type selects the action; the other
// fields are read by the actions that need them.
type ControlMessage struct {
	Type    string   `json:"type"`
	Tick    *int     `json:"tick,omitempty"`
	Tempo   *float64 `json:"tempo,omitempty"`
	Shape   string   `json:"shape,omitempty"`
	Enabled *bool    `json:"enabled,omitempty"`
}

// Apply performs the action a control message asks for.
func (c *Controller) Apply(m ControlMessage) error {
	switch m.Type {
	case "play":
		c.Play()
	case "pause":
		c.Pause()
	case "toggle":
		c.Toggle()
	case "restart":
		c.Restart()
	case "loop":
		if m.Enabled == nil {
			c.mu.Lock()
			c.loop = !c.loop
			c.mu.Unlock()
		} else {
			c.SetLoop(*m.Enabled)
		}
	case "tempo":
		if m.Tempo == nil {
			return fmt.Errorf("%w: tempo needs a value", ErrBadMessage)
		}
		return c.SetTempo(*m.Tempo)
	case "seek":
		if m.Tick == nil {
			return fmt.Errorf("%w: seek needs a tick", ErrBadMessage)
		}
		return c.Seek(*m.Tick)
	case "subset":
		if m.Shape == "" {
			return fmt.Errorf("%w: subset needs a shape", ErrBadMessage)
		}
		if m.Enabled == nil {
			return c.ToggleShape(m.Shape)
		}
		return c.SelectShape(m.Shape, *m.Enabled)
	case "play-subset":
		return c.PlaySubset()
	case "play-full":
		c.PlayFull()
	case "export":
		return c.ExportSubset()
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}
	return nil
}

func (c *Controller) handleControlMessage(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s\n", msg.MessageID(), msg.Topic(), msg.Payload())

	var message ControlMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		log.Printf("Ignoring control message: %v", err)
		return
	}
	if err := c.Apply(message); err != nil {
		log.Printf("Control %q failed: %v", message.Type, err)
	}
}

// Subscribe listens for control messages on the control topic.
func (c *Controller) Subscribe() error {
	token := c.streamer.client.Subscribe(c.control, 0, c.handleControlMessage)
	if token.Wait() && token.Error() != nil {
		log.Println(token.Error())
		return token.Error()
	}
	return nil
}
