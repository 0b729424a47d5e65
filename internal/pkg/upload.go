package pkg

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNotAnImage = errors.New("not an image")

// SniffImage 读文件头判断是否是图片，不信任客户端的 Content-Type
func SniffImage(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	if !strings.HasPrefix(http.DetectContentType(buf[:n]), "image/") {
		return ErrNotAnImage
	}
	return nil
}

// SaveImage 把上传的图片存到 mediaDir/posts/ 下，文件名用 uuid 避免冲突。
// 返回相对 mediaDir 的路径，入库用。
func SaveImage(fh *multipart.FileHeader, mediaDir string) (string, error) {
	dir := filepath.Join(mediaDir, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join("posts", name)), nil
}
