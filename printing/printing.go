// Package printing is the receipt print collaborator. It loads an HTML
// string in a headless browser and writes the rendered page to a PDF file.
package printing

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// PrintHTML renders content and writes the PDF under saveDir, returning the
// written file path. The HTML is treated as opaque.
func PrintHTML(content, saveDir, filename string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create receipt folder: %w", err)
		}
	}

	u, err := launcher.New().Headless(true).Leakless(false).Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(content)
	page, err := browser.Page(proto.TargetCreateTarget{URL: dataURL})
	if err != nil {
		return "", fmt.Errorf("failed to open receipt page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}

	pdf, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      gson.Num(3.15), // 80mm thermal roll
		PaperHeight:     gson.Num(11.7),
	})
	if err != nil {
		return "", fmt.Errorf("failed to print receipt: %w", err)
	}

	outPath := filepath.Join(saveDir, filename)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create pdf file: %w", err)
	}
	defer f.Close()
	if _, err := f.ReadFrom(pdf); err != nil {
		return "", fmt.Errorf("failed to write pdf file: %w", err)
	}
	return outPath, nil
}
