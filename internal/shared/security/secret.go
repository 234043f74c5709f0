package security

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/go-think/openssl"
)

// WS 帧可选加密：zlib 压缩 + AES-CBC（need_secret 开启时生效）。

// Zip 压缩字节流（zlib）。
func Zip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnZip 解压字节流（zlib）。
func UnZip(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// AesCBCEncrypt AES-CBC 加密（与客户端约定 ZEROS_PADDING）。
func AesCBCEncrypt(data, key, iv []byte) ([]byte, error) {
	return openssl.AesCBCEncrypt(data, key, iv, openssl.ZEROS_PADDING)
}

// AesCBCDecrypt AES-CBC 解密。
func AesCBCDecrypt(data, key, iv []byte) ([]byte, error) {
	return openssl.AesCBCDecrypt(data, key, iv, openssl.ZEROS_PADDING)
}
