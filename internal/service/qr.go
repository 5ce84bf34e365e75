package service

import (
	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeService рендерит полезную нагрузку в PNG.
type QRCodeService struct {
	size int
}

func NewQRCodeService() *QRCodeService {
	return &QRCodeService{size: 256}
}

func (s *QRCodeService) CreateQRCode(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, s.size)
}
