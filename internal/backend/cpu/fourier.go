package cpu

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/born-ml/adjoint/internal/tensor"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum describes how an array holds frequency-domain data.
type Spectrum int

const (
	// RealSpectrum arrays hold one real coefficient per element.
	RealSpectrum Spectrum = iota
	// ComplexSpectrum arrays end in an axis of length 2 holding [re, im].
	ComplexSpectrum
)

// String returns the layout name.
func (s Spectrum) String() string {
	if s == ComplexSpectrum {
		return "complex"
	}
	return "real"
}

// FFTFreq returns the sample frequency of index k in an n-point transform,
// in cycles per sample: k/n for the first half, (k-n)/n for the rest.
func FFTFreq(k, n int) float64 {
	if k < (n+1)/2 {
		return float64(k) / float64(n)
	}
	return float64(k-n) / float64(n)
}

// spectralShape returns the frequency axes of a spectrum array.
func spectralShape(name string, in *tensor.Array, layout Spectrum) (tensor.Shape, error) {
	shape := in.Shape()
	if layout == ComplexSpectrum {
		if len(shape) < 2 || shape[len(shape)-1] != 2 {
			return nil, fmt.Errorf("%s: %w: complex spectrum needs a trailing axis of length 2, got %v",
				name, tensor.ErrDimension, shape)
		}
		return shape[:len(shape)-1], nil
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%s: %w: input must have at least one axis", name, tensor.ErrDimension)
	}
	return shape, nil
}

// applyMask multiplies every spectral element by mask(f), where f holds the
// frequency of the element along each axis.
func applyMask(in *tensor.Array, freqShape tensor.Shape, layout Spectrum, mask func(f []float64) float64) *tensor.Array {
	out := in.Clone()
	data := out.Data()
	width := 1
	if layout == ComplexSpectrum {
		width = 2
	}
	idx := make([]int, len(freqShape))
	f := make([]float64, len(freqShape))
	for e := 0; e < freqShape.NumElements(); e++ {
		for a := range idx {
			f[a] = FFTFreq(idx[a], freqShape[a])
		}
		m := mask(f)
		for c := 0; c < width; c++ {
			data[e*width+c] *= m
		}
		increment(idx, freqShape)
	}
	return out
}

// increment advances a row-major multi-index.
func increment(idx []int, shape tensor.Shape) {
	for a := len(idx) - 1; a >= 0; a-- {
		idx[a]++
		if idx[a] < shape[a] {
			return
		}
		idx[a] = 0
	}
}

// FourierGaussian multiplies a spectrum by the transfer function of a
// Gaussian filter, exp(-2π²σ²f²) per axis.
func FourierGaussian(in *tensor.Array, sigma []float64, layout Spectrum) (*tensor.Array, error) {
	freq, err := spectralShape("fourier_gaussian", in, layout)
	if err != nil {
		return nil, err
	}
	sigma, err = expandFloats("sigma", sigma, len(freq))
	if err != nil {
		return nil, err
	}
	for _, s := range sigma {
		if s < 0 {
			return nil, fmt.Errorf("%w: sigma must be non-negative, got %g", ErrInvalidParameter, s)
		}
	}
	return applyMask(in, freq, layout, func(f []float64) float64 {
		e := 0.0
		for a, fa := range f {
			e += sigma[a] * sigma[a] * fa * fa
		}
		return math.Exp(-2 * math.Pi * math.Pi * e)
	}), nil
}

// sinc is the normalized sinc, sin(πx)/(πx).
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// FourierUniform multiplies a spectrum by the transfer function of a box
// filter of the given size per axis, the product of sinc(size·f).
func FourierUniform(in *tensor.Array, size []float64, layout Spectrum) (*tensor.Array, error) {
	freq, err := spectralShape("fourier_uniform", in, layout)
	if err != nil {
		return nil, err
	}
	size, err = expandFloats("size", size, len(freq))
	if err != nil {
		return nil, err
	}
	return applyMask(in, freq, layout, func(f []float64) float64 {
		m := 1.0
		for a, fa := range f {
			m *= sinc(size[a] * fa)
		}
		return m
	}), nil
}

// FourierEllipsoid multiplies a spectrum by the transfer function of an
// ellipsoidal box of the given semi-axes. Only 1, 2 and 3 frequency axes
// are supported.
func FourierEllipsoid(in *tensor.Array, size []float64, layout Spectrum) (*tensor.Array, error) {
	freq, err := spectralShape("fourier_ellipsoid", in, layout)
	if err != nil {
		return nil, err
	}
	ndim := len(freq)
	if ndim > 3 {
		return nil, fmt.Errorf("fourier_ellipsoid: %w: only 1-3 axes supported, got %d", tensor.ErrDimension, ndim)
	}
	size, err = expandFloats("size", size, ndim)
	if err != nil {
		return nil, err
	}
	return applyMask(in, freq, layout, func(f []float64) float64 {
		r2 := 0.0
		for a, fa := range f {
			sf := size[a] * fa
			r2 += sf * sf
		}
		r := math.Pi * math.Sqrt(r2)
		if r == 0 {
			return 1
		}
		switch ndim {
		case 1:
			return math.Sin(r) / r
		case 2:
			return 2 * math.J1(r) / r
		default:
			return 3 * (math.Sin(r) - r*math.Cos(r)) / (r * r * r)
		}
	}), nil
}

// FourierShift multiplies a complex spectrum by exp(-2πi Σ shift_a f_a),
// which shifts the underlying signal by shift samples along each axis.
func FourierShift(in *tensor.Array, shift []float64) (*tensor.Array, error) {
	freq, err := spectralShape("fourier_shift", in, ComplexSpectrum)
	if err != nil {
		return nil, err
	}
	shift, err = expandFloats("shift", shift, len(freq))
	if err != nil {
		return nil, err
	}

	out := in.Clone()
	data := out.Data()
	idx := make([]int, len(freq))
	for e := 0; e < freq.NumElements(); e++ {
		phase := 0.0
		for a := range idx {
			phase += shift[a] * FFTFreq(idx[a], freq[a])
		}
		rot := cmplx.Exp(complex(0, -2*math.Pi*phase))
		v := complex(data[2*e], data[2*e+1]) * rot
		data[2*e], data[2*e+1] = real(v), imag(v)
		increment(idx, freq)
	}
	return out, nil
}

// ToComplex lays a real array out as a complex spectrum with zero
// imaginary parts.
func ToComplex(in *tensor.Array) *tensor.Array {
	shape := append(in.Shape().Clone(), 2)
	out := tensor.Zeros(shape)
	data := out.Data()
	for i, v := range in.Data() {
		data[2*i] = v
	}
	return out
}

// RealPart drops the imaginary parts of a complex-layout array.
func RealPart(in *tensor.Array) (*tensor.Array, error) {
	shape, err := spectralShape("real_part", in, ComplexSpectrum)
	if err != nil {
		return nil, err
	}
	out := tensor.Zeros(shape.Clone())
	data := out.Data()
	for i := range data {
		data[i] = in.Data()[2*i]
	}
	return out, nil
}

// FFTN computes the n-dimensional discrete Fourier transform of a real
// array. The result is in complex layout, unnormalized.
func FFTN(in *tensor.Array) (*tensor.Array, error) {
	if in.NDim() == 0 {
		return nil, fmt.Errorf("fftn: %w: input must have at least one axis", tensor.ErrDimension)
	}
	return transformN(ToComplex(in), false)
}

// IFFTN inverts FFTN on a complex-layout array, including the 1/N
// normalization. The result stays in complex layout.
func IFFTN(in *tensor.Array) (*tensor.Array, error) {
	if _, err := spectralShape("ifftn", in, ComplexSpectrum); err != nil {
		return nil, err
	}
	return transformN(in.Clone(), true)
}

// transformN runs a 1-d complex FFT along every frequency axis of a
// complex-layout array. The inverse uses ifft(x) = conj(fft(conj(x)))/n.
func transformN(c *tensor.Array, inverse bool) (*tensor.Array, error) {
	shape := c.Shape()
	freq := shape[:len(shape)-1]
	data := c.Data()
	strides := freq.ComputeStrides()

	for axis, n := range freq {
		fft := fourier.NewCmplxFFT(n)
		inner := strides[axis]
		outer := freq.NumElements() / (n * inner)
		seq := make([]complex128, n)
		coeff := make([]complex128, n)
		for o := 0; o < outer; o++ {
			for k := 0; k < inner; k++ {
				base := o*n*inner + k
				for i := 0; i < n; i++ {
					e := 2 * (base + i*inner)
					v := complex(data[e], data[e+1])
					if inverse {
						v = cmplx.Conj(v)
					}
					seq[i] = v
				}
				coeff = fft.Coefficients(coeff, seq)
				for i := 0; i < n; i++ {
					v := coeff[i]
					if inverse {
						v = cmplx.Conj(v) / complex(float64(n), 0)
					}
					e := 2 * (base + i*inner)
					data[e], data[e+1] = real(v), imag(v)
				}
			}
		}
	}
	return c, nil
}
