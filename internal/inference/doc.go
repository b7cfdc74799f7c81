// Package inference provides object-detection capabilities for the plate
// recognition cascade.
//
// Two backends implement detection.ObjectDetector:
//
//   - HTTPDetector posts the image to an external inference service and
//     decodes its detections. Use it when the model runs in a separate
//     process (for example a Python YOLO server).
//   - ONNXDetector runs a YOLOv8 ONNX model in-process through OpenCV's DNN
//     module (gocv). It is only compiled with the "gocv" build tag because it
//     needs OpenCV installed; without the tag NewONNXDetector returns
//     ErrUnavailable.
//
// Both serialize inference per instance.
package inference
