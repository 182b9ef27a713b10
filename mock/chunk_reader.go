package mock_generator

import (
	"encoding/json"
	"os"

	"generate-story-lambda/application/ports/outbound"
)

type ChunkReader interface {
	Read(fileName string) ([]ScriptedChunk, error)
}

type fileChunkReader struct {
	logger outbound.LoggerPort
}

func NewFileChunkReader(logger outbound.LoggerPort) ChunkReader {
	return &fileChunkReader{
		logger: logger,
	}
}

func (r *fileChunkReader) Read(fileName string) ([]ScriptedChunk, error) {
	payload, err := os.ReadFile(fileName)
	if err != nil {
		r.logger.Error(err, "failed to read scripted chunk file")
		return nil, err
	}

	var chunks []ScriptedChunk
	if err := json.Unmarshal(payload, &chunks); err != nil {
		r.logger.Error(err, "failed to unmarshal scripted chunk file")
		return nil, err
	}

	return chunks, nil
}
