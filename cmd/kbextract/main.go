// Command kbextract turns a PDF into a tagged YAML knowledge document. With
// -bucket the document is uploaded under -prefix instead of written locally.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/knowledge"
	"github.com/yungbote/liftplan-backend/internal/platform/gcp"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
	"github.com/yungbote/liftplan-backend/internal/platform/shutdown"
)

func main() {
	var in, out, source, bucket, prefix, storageMode, emulatorHost string
	var limit int
	flag.StringVar(&in, "in", "", "PDF file")
	flag.StringVar(&out, "out", "", "output YAML path (default: <in>.yaml)")
	flag.StringVar(&source, "source", "", "source name recorded in the document (default: file name)")
	flag.IntVar(&limit, "chunk", 1200, "max characters per block")
	flag.StringVar(&bucket, "bucket", "", "GCS bucket to upload to")
	flag.StringVar(&prefix, "prefix", "knowledge/", "object prefix inside the bucket")
	flag.StringVar(&storageMode, "storage-mode", "", "gcs or gcs_emulator")
	flag.StringVar(&emulatorHost, "emulator-host", os.Getenv("STORAGE_EMULATOR_HOST"), "GCS emulator URL")
	flag.Parse()

	log, err := logger.New("dev", "info")
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	if err := run(ctx, log, in, out, source, limit, bucket, prefix, storageMode, emulatorHost); err != nil {
		log.Error("kbextract failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, in, out, source string, limit int, bucket, prefix, storageMode, emulatorHost string) error {
	if in == "" {
		return fmt.Errorf("-in is required")
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	text, err := knowledge.ExtractPDF(data)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	if source == "" {
		source = base
	}
	blocks := knowledge.BlocksFromText(source, base, text, limit)
	doc, err := knowledge.MarshalDocument(source, blocks)
	if err != nil {
		return err
	}
	tagged := 0
	for _, bl := range blocks {
		if !bl.IsPlaceholder() {
			tagged++
		}
	}
	log.Info("extracted", "blocks", len(blocks), "tagged", tagged)

	if bucket != "" {
		cfg, err := gcp.ResolveObjectStorageConfig(storageMode, emulatorHost)
		if err != nil {
			return err
		}
		b, err := gcp.NewBucket(ctx, log, bucket, cfg)
		if err != nil {
			return err
		}
		defer b.Close()
		key := path.Join(prefix, base+".yaml")
		if err := b.Upload(ctx, key, bytes.NewReader(doc)); err != nil {
			return err
		}
		log.Info("uploaded", "bucket", bucket, "key", key)
		return nil
	}

	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".yaml"
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return err
	}
	log.Info("wrote", "path", out)
	return nil
}
