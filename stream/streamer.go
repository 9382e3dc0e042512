package stream

import (
	"github.com/eclipse/paho.mqtt.golang"
)

// Streamer publishes frames and exported documents over MQTT.
type Streamer struct {
	client      mqtt.Client
	streamTopic string
	exportTopic string
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client) *Streamer {
	s := new(Streamer)
	s.client = client
	s.streamTopic = config.Mqtt.Topics.Stream
	s.exportTopic = config.Mqtt.Topics.Export
	return s
}

func (s *Streamer) publish(topic string, qos byte, retained bool, payload []byte) error {
	token := s.client.Publish(topic, qos, retained, payload)
	token.Wait()
	return token.Error()
}

// SendFrame sends a frame as binary over MQTT.
func (s *Streamer) SendFrame(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	return s.publish(s.streamTopic, 0, false, b)
}

// Export publishes a rendered document, retained so late subscribers get
// the latest one.
func (s *Streamer) Export(doc string) error {
	return s.publish(s.exportTopic, 1, true, []byte(doc))
}
