package validate

// AllowedTags is the controlled vocabulary of descriptive tags. Every
// non-year tag on a record must come from this list.
var AllowedTags = []string{
	"2DGS", "360 degree", "Acceleration", "Antialiasing", "Autonomous Driving",
	"Avatar", "Classic Work", "Code", "Compression", "Deblurring", "Densification",
	"Diffusion", "Distributed", "Dynamic", "Editing", "Event Camera", "Feed-Forward",
	"GAN", "Inpainting", "In the Wild", "Language Embedding", "Large-Scale", "Lidar",
	"Medicine", "Meshing", "Misc", "Monocular", "Perspective-correct", "Object Detection",
	"Optimization", "Physics", "Point Cloud", "Poses", "Project", "Ray Tracing",
	"Rendering", "Relight", "Review", "Robotics", "Segmentation", "SLAM", "Sparse",
	"Stereo", "Style Transfer", "Texturing", "Transformer", "Uncertainty", "Video",
	"Virtual Reality", "World Generation",
}

var allowedSet = func() map[string]bool {
	m := make(map[string]bool, len(AllowedTags))
	for _, t := range AllowedTags {
		m[t] = true
	}
	return m
}()

// IsAllowedTag reports whether a descriptive tag is in the controlled
// vocabulary.
func IsAllowedTag(tag string) bool {
	return allowedSet[tag]
}
