package inference

import "strconv"

// cocoClasses are the class names of the COCO-trained YOLO models, indexed
// by class id.
var cocoClasses = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat",
	"dog", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
	"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball",
	"kite", "baseball bat", "baseball glove", "skateboard", "surfboard", "tennis racket",
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
	"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
	"refrigerator", "book", "clock", "vase", "scissors", "teddy bear", "hair drier",
	"toothbrush",
}

// className maps a class id to a label. Models with a single class (plate
// detectors) report "plate"; ids outside the table become "class_<id>".
func className(id, numClasses int) string {
	if numClasses == 1 {
		return "plate"
	}
	if numClasses == len(cocoClasses) && id >= 0 && id < len(cocoClasses) {
		return cocoClasses[id]
	}
	return "class_" + strconv.Itoa(id)
}
