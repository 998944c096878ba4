package resumes

import (
	"fmt"
	"strings"

	"ats-checker/internal/processing"
	"ats-checker/internal/shared/util"
)

// ValidateUpload rejects uploads the pipeline cannot handle before any
// money is spent on extraction.
func ValidateUpload(fileName string, sizeBytes int64) error {
	if strings.TrimSpace(fileName) == "" {
		return fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if sizeBytes <= 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if sizeBytes > processing.MaxFileBytes {
		return fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, int64(processing.MaxFileBytes))
	}
	ext := util.FileExtension(fileName)
	if !processing.ExtensionSupported(ext) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedType, ext, strings.Join(processing.SupportedExtensions(), ", "))
	}
	return nil
}
