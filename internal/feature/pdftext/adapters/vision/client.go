// Package vision はGoogle Cloud Vision APIを使用したPDFページのOCRクライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"data_explorer/internal/platform/extract"
)

type annotateFunc func(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error)

// VisionPageOCR はVision APIのDOCUMENT_TEXT_DETECTIONでPDFの1ページを認識します。
// ページのラスタライズはVision側で行われます。
type VisionPageOCR struct {
	client   *gvision.ImageAnnotatorClient
	annotate annotateFunc
}

// VisionPageOCRがPageOCRを実装していることをコンパイル時に検証します。
var _ extract.PageOCR = (*VisionPageOCR)(nil)

// NewVisionPageOCR はADCを使用してVisionPageOCRの新しいインスタンスを生成します。
func NewVisionPageOCR(ctx context.Context) (*VisionPageOCR, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionPageOCR{
		client: client,
		annotate: func(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error) {
			return client.BatchAnnotateFiles(ctx, req)
		},
	}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionPageOCR) Close() error {
	if v.client == nil {
		return nil
	}
	return v.client.Close()
}

// RecognizePage はPDFのバイト列から指定ページ(1始まり)のテキストを認識します。
func (v *VisionPageOCR) RecognizePage(ctx context.Context, raw []byte, page int) (string, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  raw,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				Pages: []int32{int32(page)},
			},
		},
	}

	resp, err := v.annotate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.GetResponses()) == 0 {
		return "", nil
	}
	file := resp.GetResponses()[0]
	if file.GetError() != nil {
		return "", fmt.Errorf("vision API error: %s", file.GetError().GetMessage())
	}

	var sb strings.Builder
	for _, r := range file.GetResponses() {
		if r.GetError() != nil {
			return "", fmt.Errorf("vision API error: %s", r.GetError().GetMessage())
		}
		sb.WriteString(r.GetFullTextAnnotation().GetText())
	}
	return sb.String(), nil
}
