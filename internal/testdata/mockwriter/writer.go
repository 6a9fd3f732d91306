package mockwriter

import (
	"github.com/stretchr/testify/mock"

	"github.com/davez1000/dbo-stats/internal/export"
)

type Writer struct {
	mock.Mock
}

// Interface compliance check
var _ export.FileWriter = &Writer{}

func (m *Writer) Write(path string, data []byte) error {
	return m.Called(path, data).Error(0)
}
