package wav

const (
	wavFormatPCM  = 1
	scalePCMInt16 = 32768.0
)

// int16ToFloat32 maps a decoded sample to [-1, 1).
func int16ToFloat32(sample int16) float32 {
	return float32(float64(sample) / scalePCMInt16)
}
