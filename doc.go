/*
go-kinectlite provides the data model and processing building blocks for
visualising a Kinect v1 class body tracking sensor.  A sensor delivers three
streams per tick: a color image, a depth image with the player segmentation
index packed into each sample, and a list of tracked skeletons.

The root package holds the per frame data types.  The sub packages turn them
into drawable data:

  - depthmap converts depth samples into an RGB pixel buffer
  - projection maps 3D skeleton points onto a 2D canvas
  - skeleton defines the bone topology and builds per skeleton render plans
  - tracker selects the active player and keeps position history
  - pipeline runs all of the above once per frame
  - render draws the results with GoCV

None of the processing packages perform I/O or hold on to sensor resources.
See example code and usage in the example subdirectory.
*/
package kinectlite
