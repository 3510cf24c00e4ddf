package api

import (
	"fmt"

	"github.com/retrospace/messenger-cli/pkg/client"
	"github.com/retrospace/messenger-cli/pkg/emoticon"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

// GetEmoticons retrieves the built-in emoticon table. Order matters: the
// parser resolves overlapping codes by table order.
func GetEmoticons() ([]emoticon.Emoticon, error) {
	logger.Debug("Fetching built-in emoticons")

	var emoticons []emoticon.Emoticon
	resp, err := client.GetClient().
		R().
		SetResult(&emoticons).
		Get("/api/emoticons")

	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch emoticons: %w", err)
	}

	return emoticons, nil
}

// GetCustomEmoticons retrieves the local user's uploaded emoticons
func GetCustomEmoticons() ([]emoticon.Emoticon, error) {
	logger.Debug("Fetching custom emoticons")

	var emoticons []emoticon.Emoticon
	resp, err := client.GetClient().
		R().
		SetResult(&emoticons).
		Get("/api/emoticons/custom")

	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch custom emoticons: %w", err)
	}

	for i := range emoticons {
		emoticons[i].IsCustom = true
	}

	return emoticons, nil
}

// UploadCustomEmoticon uploads an image as a new custom emoticon
func UploadCustomEmoticon(name, code, filePath string) (*emoticon.Emoticon, error) {
	logger.Debug("Uploading custom emoticon", "name", name, "code", code)

	var created emoticon.Emoticon
	resp, err := client.GetClient().
		R().
		SetFile("image", filePath).
		SetFormData(map[string]string{
			"name": name,
			"code": code,
		}).
		SetResult(&created).
		Post("/api/emoticons/custom")

	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to upload emoticon: %w", err)
	}

	created.IsCustom = true
	return &created, nil
}
