// Package neural provides the genetic encoding and spiking brains of foraging entities.
package neural

import (
	"fmt"
	"math"
)

// restEpsilon is the excitation below which a relaxing neuron snaps to zero.
const restEpsilon = 0.01

// Neuron is the runtime state of one brain cell. Only Excitation changes after construction.
type Neuron struct {
	Excitation float64
	Threshold  float64
	Relaxation float64
	Axons      []Axon
}

// Brain is a layered grid of neurons built from a genome.
// Layer 0 receives sensory input; the last layer drives the motors.
type Brain struct {
	Layers [][]Neuron
}

// NewBrain builds a brain from a genome. It panics if the genome does not
// match the configured topology, since that can only come from a programming error.
func NewBrain(g *Genome, p Params) *Brain {
	if len(g.Genes) != p.GenomeLength() {
		panic(fmt.Sprintf("neural: genome has %d genes, want %d", len(g.Genes), p.GenomeLength()))
	}

	layers := make([][]Neuron, p.Layers)
	for i := range layers {
		layer := make([]Neuron, p.NeuronsPerLayer)
		for j := range layer {
			gene := g.Genes[i*p.NeuronsPerLayer+j]
			axons := make([]Axon, len(gene.Axons))
			for k, a := range gene.Axons {
				if a.Target < 0 || a.Target >= p.NeuronsPerLayer {
					panic(fmt.Sprintf("neural: gene %d axon %d targets slot %d outside layer of %d",
						i*p.NeuronsPerLayer+j, k, a.Target, p.NeuronsPerLayer))
				}
				axons[k] = a
			}
			layer[j] = Neuron{
				Threshold:  gene.Threshold,
				Relaxation: gene.Relaxation,
				Axons:      axons,
			}
		}
		layers[i] = layer
	}

	return &Brain{Layers: layers}
}

// Think runs the network for the given number of micro-steps, re-injecting
// inputs into the first layer on every step, and adds output-layer firings to counts.
//
// Evaluation order is layer by layer, and by slot within a layer. A neuron fed
// by an earlier neuron in the same step sees that excitation immediately.
func (b *Brain) Think(inputs []float64, thoughts int, counts *MotorCounts) {
	last := len(b.Layers) - 1
	for t := 0; t < thoughts; t++ {
		for i, layer := range b.Layers {
			for j := range layer {
				n := &layer[j]

				if i == 0 && j < len(inputs) {
					n.Excitation += finite(inputs[j])
				}

				if n.Excitation > n.Threshold {
					if i == last {
						if j < int(NumMotors) {
							counts[j]++
						}
					} else {
						next := b.Layers[i+1]
						for _, a := range n.Axons {
							target := &next[a.Target]
							target.Excitation += a.Strength
							if target.Excitation < 0 {
								target.Excitation = 0
							}
						}
					}
					n.Excitation = 0
					continue
				}

				n.Excitation *= n.Relaxation
				if n.Excitation < restEpsilon {
					n.Excitation = 0
				}
			}
		}
	}
}

// NeuronCount returns the total number of neurons.
func (b *Brain) NeuronCount() int {
	total := 0
	for _, layer := range b.Layers {
		total += len(layer)
	}
	return total
}

// AxonCount returns the total number of axons.
func (b *Brain) AxonCount() int {
	total := 0
	for _, layer := range b.Layers {
		for _, n := range layer {
			total += len(n.Axons)
		}
	}
	return total
}

// finite maps NaN and infinities to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
