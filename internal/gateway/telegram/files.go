package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Open resolves a Telegram file ID to its download stream. The caller closes
// the returned body.
func (g *Gateway) Open(ctx context.Context, fileRef string) (io.ReadCloser, error) {
	file, err := g.bot.GetFile(tgbotapi.FileConfig{FileID: fileRef})
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileRef, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(g.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileRef, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download file %s: status %d", fileRef, resp.StatusCode)
	}
	return resp.Body, nil
}
