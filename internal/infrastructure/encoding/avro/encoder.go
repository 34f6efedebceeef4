package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"

	"store_sales/internal/domain/sales"
)

// Encoder wraps a goavro codec. Codecs are safe for concurrent use.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder creates a new encoder from an Avro schema string
func NewEncoder(schema string) (*Encoder, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}
	return &Encoder{codec: codec}, nil
}

func NewPredictionEncoder() (*Encoder, error) {
	return NewEncoder(PredictionEventSchema)
}

// EncodeNative converts a Go native map to Avro binary format
func (e *Encoder) EncodeNative(native interface{}) ([]byte, error) {
	binary, err := e.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("failed to encode to avro binary: %w", err)
	}
	return binary, nil
}

func (e *Encoder) EncodePrediction(p *sales.Prediction) ([]byte, error) {
	native, err := ToPredictionEventNative(p)
	if err != nil {
		return nil, err
	}
	return e.EncodeNative(native)
}

// DecodeNative converts Avro binary back to the goavro native form.
func (e *Encoder) DecodeNative(data []byte) (map[string]interface{}, error) {
	native, _, err := e.codec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avro binary: %w", err)
	}
	m, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("avro datum is %T, want record", native)
	}
	return m, nil
}
