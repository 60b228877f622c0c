package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadResult is the acknowledgement returned by the file upload
// endpoints.
type UploadResult struct {
	Message     string `json:"message"`
	StoredPath  string `json:"stored_path"`
	DownloadURL string `json:"download_url"`
}

// LessonFileURL builds the download URL for a lesson attachment. These
// builders make no network call: media and anchor elements fetch the URL
// directly, authenticating through the optional token query parameter.
func (c *Client) LessonFileURL(courseID, lessonID int64, token string) string {
	return c.fileURL(fmt.Sprintf("/files/lessons/%d/%d", courseID, lessonID), token)
}

// LessonStreamURL builds the streaming URL for a video lesson.
func (c *Client) LessonStreamURL(courseID, lessonID int64, token string) string {
	return c.fileURL(fmt.Sprintf("/files/stream/lessons/%d/%d", courseID, lessonID), token)
}

// SubmissionFileURL builds the download URL for a submitted file.
func (c *Client) SubmissionFileURL(submissionID int64, token string) string {
	return c.fileURL(fmt.Sprintf("/files/submissions/%d", submissionID), token)
}

func (c *Client) fileURL(path, token string) string {
	raw := c.baseURL + path
	if token == "" {
		return raw
	}
	q := url.Values{}
	q.Set("token", token)
	return raw + "?" + q.Encode()
}

// UploadLessonFile sends a lesson attachment as multipart form data.
// Callers are expected to have passed the payload through the client-side
// type gate first; the server enforces its own checks regardless.
func (c *Client) UploadLessonFile(ctx context.Context, courseID, lessonID int64, filename string, file io.Reader) (UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return UploadResult{}, fmt.Errorf("read upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	var result UploadResult
	path := fmt.Sprintf("/files/lessons/%d/%d", courseID, lessonID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, writer.FormDataContentType(), &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// DownloadSubmissionFile streams a submitted file into the writer. Unlike
// the URL builders this goes through the authenticated client, for flows
// where the caller wants the bytes rather than a link.
func (c *Client) DownloadSubmissionFile(ctx context.Context, submissionID int64, dst io.Writer) error {
	endpoint := c.baseURL + fmt.Sprintf("/files/submissions/%d", submissionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download submission %d: %w", submissionID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("write download: %w", err)
	}
	return nil
}
