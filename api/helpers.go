package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/petconnect/petconnect-BE/internal/util"
)

// publicIDFromURL extracts the bare file name of an uploaded asset from its
// delivery URL.
func publicIDFromURL(url string) string {
	base := path.Base(url)
	return strings.TrimSuffix(base, path.Ext(base))
}

func (server *Server) uploadFileToCloudinary(base string, folder string, files ...*multipart.FileHeader) (uploadedFileURLs []string, err error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	for _, file := range files {
		// Open and read file
		currentFile, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer currentFile.Close()

		fileBytes, err := io.ReadAll(currentFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}

		fileName := util.GenerateImageName(base)

		uploadedFileURL, err := server.fileStore.UploadFile(fileBytes, fileName, folder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload file: %w", err)
		}

		uploadedFileURLs = append(uploadedFileURLs, uploadedFileURL)
	}

	return uploadedFileURLs, nil
}
