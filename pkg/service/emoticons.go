package service

import (
	"fmt"
	"os"

	"github.com/retrospace/messenger-cli/pkg/api"
	"github.com/retrospace/messenger-cli/pkg/errors"
	"github.com/retrospace/messenger-cli/pkg/logger"
	"github.com/retrospace/messenger-cli/pkg/output"
)

// EmoticonService lists and uploads emoticons
type EmoticonService struct{}

// NewEmoticonService creates a new emoticon service
func NewEmoticonService() *EmoticonService {
	return &EmoticonService{}
}

// ListEmoticons displays the built-in and custom emoticon tables
func (es *EmoticonService) ListEmoticons() error {
	logger.Debug("Listing emoticons")

	builtin, err := api.GetEmoticons()
	if err != nil {
		return err
	}

	custom, err := api.GetCustomEmoticons()
	if err != nil {
		logger.Debug("Failed to fetch custom emoticons", "error", err)
		custom = nil
	}

	rows := make([][]string, 0, len(builtin)+len(custom))
	for _, e := range append(builtin, custom...) {
		kind := "built-in"
		if e.IsCustom {
			kind = "custom"
		}
		animated := ""
		if e.IsAnimated {
			animated = "animated"
		}
		rows = append(rows, []string{e.Code, e.Name, e.Category, kind, animated})
	}

	if len(rows) == 0 {
		fmt.Println("No emoticons available.")
		return nil
	}

	output.PrintTable([]string{"Code", "Name", "Category", "Type", ""}, rows)
	return nil
}

// Upload uploads an image file as a new custom emoticon
func (es *EmoticonService) Upload(name, code, filePath string) error {
	logger.Debug("Uploading emoticon", "name", name, "code", code, "file", filePath)

	if code == "" {
		return errors.ValidationError("code", "emoticon code is required")
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("cannot read %s: %w", filePath, err)
	}

	created, err := api.UploadCustomEmoticon(name, code, filePath)
	if err != nil {
		return err
	}

	output.PrintSuccess("Uploaded emoticon %s (%s)", created.Name, created.Code)
	return nil
}
